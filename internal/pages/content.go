package pages

// Section is one block of a legal page. A section carries a paragraph, a
// bullet list, definitions, or a mix.
type Section struct {
	Title     string
	Paragraph string
	Items     []string
	Terms     []Term
	Email     string
}

// Term is a defined word with its explanation lines.
type Term struct {
	Name  string
	Lines []string
}

// LegalPage is the data rendered by the privacy and terms templates.
type LegalPage struct {
	Title       string
	Tagline     string
	LastUpdated string
	Sections    []Section
}

const (
	ContactEmail = "cargoph2025@gmail.com"
	// AppDownloadURL is the Android build linked from the home page.
	AppDownloadURL = "https://cargo-rental-bucket.nyc3.cdn.digitaloceanspaces.com/apk-file/app-release.apk"
	lastUpdated    = "October 13, 2025"
)

var PrivacyPolicy = LegalPage{
	Title:       "Privacy Policy",
	Tagline:     "Your privacy matters to us. Learn how we protect and manage your personal information.",
	LastUpdated: lastUpdated,
	Sections: []Section{
		{
			Title:     "Introduction",
			Paragraph: "This Privacy Policy outlines how CarGO collects, uses, and protects the personal information of users. By using our Application, you consent to the data practices described in this policy.",
		},
		{
			Title: "Information Collection",
			Items: []string{
				"Personal Information: We collect personal information such as name, contact details, identification documents, and payment information during the registration process.",
				"Usage Data: We may collect information about how you use the Application, including device information, IP address, and location data.",
			},
		},
		{
			Title: "Information Use",
			Items: []string{
				"To facilitate the rental process and manage bookings.",
				"To communicate with users regarding their accounts, bookings, and customer service inquiries",
				"To improve our services and enhance user experience.",
				"To comply with legal obligations and protect our rights.",
			},
		},
		{
			Title: "Information Sharing",
			Items: []string{
				"Vehicle Owners for the purpose of facilitating rentals.",
				"Service providers who assist us in operating the Application and providing services.",
				"Law enforcement or regulatory authorities when required by law.",
			},
		},
		{
			Title:     "Data Security",
			Paragraph: "We implement reasonable security measures to protect your personal information from unauthorized access, use, or disclosure. However, no method of transmission over the internet or electronic storage is 100% secure.",
		},
		{
			Title: "User Rights",
			Items: []string{
				"Access their personal information and request corrections if necessary.",
				"Request the deletion of their personal information, subject to legal obligations.",
				"Withdraw consent for the processing of their personal information at any time.",
			},
		},
		{
			Title:     "Changes to Policy",
			Paragraph: "CarGO reserves the right to modify this Privacy Policy at any time. Users will be notified of any changes, and continued use of the Application constitutes acceptance of the modified policy.",
		},
		{
			Title:     "Contact Us",
			Paragraph: "If you have any questions or concerns about this Privacy Policy or our data practices",
			Email:     ContactEmail,
		},
	},
}

var TermsConditions = LegalPage{
	Title:       "Terms and Conditions",
	Tagline:     "Please read these terms carefully before using the CarGO application.",
	LastUpdated: lastUpdated,
	Sections: []Section{
		{
			Title: "Definitions",
			Terms: []Term{
				{Name: "Application", Lines: []string{"refers to the CarGO mobile application"}},
				{Name: "User", Lines: []string{"refers to any individual who accesses or uses the Application, including vehicle owners and renters."}},
				{Name: "Vehicle Owner", Lines: []string{"refers to individuals who list their vehicles for rent through the Application"}},
				{Name: "Renter", Lines: []string{
					"Rentals begin and end at the agreed pickup and return time.",
					"Early returns: No refunds.",
					"Late returns: A penalty applies after the agreed return time.",
					"Pickup/Return Location: Failure to return the vehicle at the designated location results in forfeiture of the deposit and additional retrieval fees.",
				}},
			},
		},
		{
			Title:     "User Registration",
			Paragraph: "To use the Application, users must create an account by providing accurate and complete information. Users must accept these Terms and Conditions and our Privacy Policy during the registration process.",
		},
		{
			Title: "Vehicle Owner Responsibilities",
			Items: []string{
				"Vehicle Owners must ensure that their vehicles are in good condition and meet safety standards.",
				"Vehicle Owners are responsible for providing accurate information about their vehicles, including availability, pricing, and any applicable fees.",
				"Vehicle Owners must manage their rental appointments and respond to requests in a timely manner.",
			},
		},
		{
			Title: "Renter Responsibilities",
			Items: []string{
				"Renters must provide valid identification and any required documentation during the registration process.",
				"Renters are responsible for adhering to the rental terms, including payment of fees and returning the vehicle in the same condition as received.",
				"Renters must report any issues or concerns regarding the vehicle to the Vehicle Owner promptly.",
			},
		},
		{
			Title: "Payment Terms",
			Items: []string{
				"All rental fees must be paid through the payment methods supported by the Application, which currently include GCash and cash payments.",
				"Renters are responsible for any additional fees, including but not limited to late return fees, damage fees, and cancellation fees.",
			},
		},
		{
			Title: "Cancellation Policy",
			Items: []string{
				"Renters may cancel their bookings and request a refund according to the guidelines provided in the Application.",
				"Refunds will be processed in accordance with the terms specified at the time of booking.",
			},
		},
		{
			Title:     "Liability",
			Paragraph: "CarGO is not liable for any damages, losses, or claims arising from the use of the Application, including but not limited to vehicle damage, personal injury, or theft. Users agree to indemnify and hold CarGO harmless from any claims arising from their use of the Application.",
		},
		{
			Title:     "Modification of Terms",
			Paragraph: "CarGO reserves the right to modify these Terms and Conditions at any time. Users will be notified of any changes, and continued use of the Application constitutes acceptance of the modified terms.",
		},
	},
}

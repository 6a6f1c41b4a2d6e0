package email

// Mail copy per language. Only the languages the kiosk ships localized mail
// for appear here; everything else falls back to English.
var mailCopy = map[string]map[string]string{
	"en": {
		"emailSubject":  "Your tickets for",
		"emailGreeting": "Hello! Here are your tickets",
		"emailMessage":  "Thank you for choosing AmuseApp! Enjoy your visit with our interactive audio guide.",
		"museumName":    "Museum",
		"yourTickets":   "Your tickets",
		"ticket":        "Ticket",
		"ticketCode":    "Code",
		"qrCode":        "QR Code",
		"howToUse":      "How to use your tickets",
		"step1":         "Scan the QR code of each ticket at the entrance",
		"step2":         "Open the audio guide on your smartphone",
		"step3":         "Enjoy your visit!",
		"emailFooter":   "Thank you for choosing AmuseApp for your visit!",
		"contactInfo":   "For support: support@amuseapp.it",
	},
	"it": {
		"emailSubject":  "I tuoi biglietti per",
		"emailGreeting": "Ciao! Ecco i tuoi biglietti",
		"emailMessage":  "Grazie per aver scelto AmuseApp! Goditi la visita con la nostra audioguida interattiva.",
		"museumName":    "Museo",
		"yourTickets":   "I tuoi biglietti",
		"ticket":        "Biglietto",
		"ticketCode":    "Codice",
		"qrCode":        "QR Code",
		"howToUse":      "Come usare i tuoi biglietti",
		"step1":         "Scansiona il QR code di ogni biglietto all'ingresso",
		"step2":         "Apri l'audioguida sul tuo smartphone",
		"step3":         "Goditi la visita!",
		"emailFooter":   "Grazie per aver scelto AmuseApp per la tua visita!",
		"contactInfo":   "Per assistenza: support@amuseapp.it",
	},
}

// TranslationsFor returns the mail copy for a language code, falling back
// to English.
func TranslationsFor(lang string) map[string]string {
	if copySet, ok := mailCopy[lang]; ok {
		return copySet
	}
	return mailCopy["en"]
}

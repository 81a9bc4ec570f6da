package templates

type translation struct {
	Subject             string
	Greeting            string
	ConfirmationMessage string
	PendingStatus       string
	ReservationDetails  string
	ConfirmationNumber  string
	Date                string
	Time                string
	PartySize           string
	Guest               string
	Guests              string
	Table               string
	Section             string
	SpecialRequests     string
	ConfirmationInfo    string
	ContactUs           string
	LookingForward      string
	Footer              string

	weekdays [7]string
	months   [12]string
	// dateLayout receives weekday, day, month and year in that order.
	dateLayout string
}

const defaultLanguage = "en"

var translations = map[string]translation{
	"en": {
		Subject:             "Reservation Confirmation - GrandCafe Cheers",
		Greeting:            "Hello",
		ConfirmationMessage: "Thank you for your reservation at GrandCafe Cheers! We have received your booking request.",
		PendingStatus:       "Pending Confirmation",
		ReservationDetails:  "Reservation Details",
		ConfirmationNumber:  "Confirmation Number",
		Date:                "Date",
		Time:                "Time",
		PartySize:           "Party Size",
		Guest:               "guest",
		Guests:              "guests",
		Table:               "Table",
		Section:             "Section",
		SpecialRequests:     "Special Requests",
		ConfirmationInfo:    "Your reservation is currently pending. We will confirm it within 24 hours and send you an update.",
		ContactUs:           "Contact Us",
		LookingForward:      "We look forward to welcoming you at GrandCafe Cheers, Mallorca's finest beachfront dining experience!",
		Footer:              "This is an automated confirmation email.",
		weekdays:            [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		months:              [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		dateLayout:          "%[1]s, %[3]s %[2]d, %[4]d",
	},
	"nl": {
		Subject:             "Reserveringsbevestiging - GrandCafe Cheers",
		Greeting:            "Hallo",
		ConfirmationMessage: "Bedankt voor uw reservering bij GrandCafe Cheers! We hebben uw boekingsverzoek ontvangen.",
		PendingStatus:       "Bevestiging in behandeling",
		ReservationDetails:  "Reserveringsgegevens",
		ConfirmationNumber:  "Bevestigingsnummer",
		Date:                "Datum",
		Time:                "Tijd",
		PartySize:           "Aantal personen",
		Guest:               "gast",
		Guests:              "gasten",
		Table:               "Tafel",
		Section:             "Sectie",
		SpecialRequests:     "Speciale verzoeken",
		ConfirmationInfo:    "Uw reservering is momenteel in behandeling. We bevestigen deze binnen 24 uur en sturen u een update.",
		ContactUs:           "Contact",
		LookingForward:      "We kijken ernaar uit u te verwelkomen bij GrandCafe Cheers, de beste strandervaring van Mallorca!",
		Footer:              "Dit is een geautomatiseerde bevestigingsmail.",
		weekdays:            [7]string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"},
		months:              [12]string{"januari", "februari", "maart", "april", "mei", "juni", "juli", "augustus", "september", "oktober", "november", "december"},
		dateLayout:          "%[1]s %[2]d %[3]s %[4]d",
	},
	"es": {
		Subject:             "Confirmación de Reserva - GrandCafe Cheers",
		Greeting:            "Hola",
		ConfirmationMessage: "¡Gracias por su reserva en GrandCafe Cheers! Hemos recibido su solicitud de reserva.",
		PendingStatus:       "Confirmación pendiente",
		ReservationDetails:  "Detalles de la reserva",
		ConfirmationNumber:  "Número de confirmación",
		Date:                "Fecha",
		Time:                "Hora",
		PartySize:           "Número de personas",
		Guest:               "persona",
		Guests:              "personas",
		Table:               "Mesa",
		Section:             "Sección",
		SpecialRequests:     "Peticiones especiales",
		ConfirmationInfo:    "Su reserva está actualmente pendiente. La confirmaremos en un plazo de 24 horas y le enviaremos una actualización.",
		ContactUs:           "Contáctenos",
		LookingForward:      "¡Esperamos darle la bienvenida en GrandCafe Cheers, la mejor experiencia gastronómica frente al mar en Mallorca!",
		Footer:              "Este es un correo electrónico de confirmación automático.",
		weekdays:            [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		months:              [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		dateLayout:          "%[1]s, %[2]d de %[3]s de %[4]d",
	},
	"de": {
		Subject:             "Reservierungsbestätigung - GrandCafe Cheers",
		Greeting:            "Hallo",
		ConfirmationMessage: "Vielen Dank für Ihre Reservierung im GrandCafe Cheers! Wir haben Ihre Buchungsanfrage erhalten.",
		PendingStatus:       "Bestätigung ausstehend",
		ReservationDetails:  "Reservierungsdetails",
		ConfirmationNumber:  "Bestätigungsnummer",
		Date:                "Datum",
		Time:                "Uhrzeit",
		PartySize:           "Personenzahl",
		Guest:               "Person",
		Guests:              "Personen",
		Table:               "Tisch",
		Section:             "Bereich",
		SpecialRequests:     "Besondere Wünsche",
		ConfirmationInfo:    "Ihre Reservierung ist derzeit ausstehend. Wir werden sie innerhalb von 24 Stunden bestätigen und Ihnen ein Update senden.",
		ContactUs:           "Kontakt",
		LookingForward:      "Wir freuen uns darauf, Sie im GrandCafe Cheers, Mallorcas feinstem Strandrestaurant, begrüßen zu dürfen!",
		Footer:              "Dies ist eine automatische Bestätigungs-E-Mail.",
		weekdays:            [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		months:              [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		dateLayout:          "%[1]s, %[2]d. %[3]s %[4]d",
	},
}

func lookup(language string) translation {
	if t, ok := translations[language]; ok {
		return t
	}
	return translations[defaultLanguage]
}

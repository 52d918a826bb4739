package features

// Calendar names per locale. Abbreviations are listed both with and without
// the trailing period.
var months = [][]string{
	// en
	{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"},
	{"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec"},
	{"jan.", "feb.", "mar.", "apr.", "jun.", "jul.", "aug.", "sep.", "sept.", "oct.", "nov.", "dec."},
	// nl
	{"januari", "februari", "maart", "april", "mei", "juni", "juli", "augustus", "september", "oktober", "november", "december"},
	{"mrt", "mrt.", "okt", "okt."},
	// de
	{"januar", "jänner", "februar", "märz", "april", "mai", "juni", "juli", "august", "september", "oktober", "november", "dezember"},
	{"mär", "mär.", "dez", "dez."},
	// fr
	{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	{"janv.", "févr.", "avr.", "juil.", "déc."},
	// es
	{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "setiembre", "octubre", "noviembre", "diciembre"},
	{"ene", "ene.", "abr", "abr.", "ago", "ago.", "dic", "dic."},
}

var weekdays = [][]string{
	// en
	{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
	{"mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri", "sat", "sun"},
	{"mon.", "tue.", "tues.", "wed.", "thu.", "thur.", "thurs.", "fri.", "sat.", "sun."},
	// nl
	{"maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag", "zondag"},
	{"ma", "di", "wo", "do", "vr", "za", "zo"},
	{"ma.", "di.", "wo.", "do.", "vr.", "za.", "zo."},
	// de
	{"montag", "dienstag", "mittwoch", "donnerstag", "freitag", "samstag", "sonnabend", "sonntag"},
	{"mo", "mi", "fr", "sa", "so", "mo.", "mi.", "fr.", "sa.", "so."},
	// fr
	{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"},
	{"lun.", "mar.", "mer.", "jeu.", "ven.", "sam.", "dim."},
	// es
	{"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo"},
}

var streetParts = set(`
avenue ave ave.
boulevard blvd blvd.
street str. st. straat
road rd rd.
drive dr dr.
lane ln ln.
court
circle
place pl
ridgeway parkway highway
park
unit
block
laan
weg
`)

var addressParts = set(`suite floor p.o. po center`)

var directions = set(`
north south east west
n s e w n. s. e. w.
ne se sw nw
northeast southeast southwest northwest
`)

var ranges = set(`t/m - van tot from to`)

// emailZones are the accepted top level zones besides two-letter country codes.
var emailZones = []string{
	"aero", "asia", "biz", "cat", "com", "coop", "edu", "gov", "info", "int", "jobs",
	"mil", "moby", "museum", "name", "net", "org", "pro", "tel", "travel", "xxx",
}

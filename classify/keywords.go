package classify

// Keyword tables for component detection. Matching is case-insensitive;
// entries of one or two characters are abbreviations and only match as
// standalone tokens.

var roomKeywords = map[string][]string{
	"bedroom":  {"BEDROOM", "BED", "BR", "MASTER", "GUEST ROOM"},
	"bathroom": {"BATH", "TOILET", "WC", "SHOWER", "ENSUITE", "POWDER"},
	"kitchen":  {"KITCHEN", "PANTRY", "COOK"},
	"living":   {"LIVING", "LOUNGE", "FAMILY", "GREAT ROOM"},
	"dining":   {"DINING", "MEALS", "BREAKFAST", "NOOK"},
	"garage":   {"GARAGE", "CARPORT", "CAR SPACE"},
	"laundry":  {"LAUNDRY", "UTILITY", "MUD ROOM"},
	"entry":    {"FOYER", "VESTIBULE", "HALL"},
	"balcony":  {"BALCONY", "DECK", "PORCH", "PATIO", "TERRACE"},
	"storage":  {"STORAGE", "CLOSET", "WARDROBE", "LINEN"},
}

var setbackKeywords = []string{
	"SETBACK", "BOUNDARY", "PROPERTY LINE", "LOT LINE",
	"EASEMENT", "RIGHT OF WAY", "ROW",
}

var doorKeywords = []string{"DOOR", "ENTRY", "EXIT"}
var windowKeywords = []string{"WINDOW", "GLAZING"}

var parkingKeywords = []string{"PARKING", "GARAGE", "CARPORT", "CAR SPACE", "DRIVEWAY"}

var stairKeywords = []string{"STAIR", "STEP", "RISER", "TREAD", "UP", "DOWN", "DN"}
var rampKeywords = []string{"RAMP", "ACCESSIBLE RAMP", "ADA RAMP"}
var elevatorKeywords = []string{"ELEVATOR", "LIFT", "ELEV"}

var fireSafetyKeywords = map[string][]string{
	"smoke_alarm":  {"SMOKE ALARM", "SMOKE DETECTOR", "SD"},
	"sprinkler":    {"SPRINKLER", "FIRE SPRINKLER", "SPK"},
	"fire_exit":    {"FIRE EXIT", "EMERGENCY EXIT"},
	"fire_door":    {"FIRE DOOR", "FD", "FIRE RATED"},
	"hydrant":      {"HYDRANT", "FIRE HYDRANT", "FH"},
	"extinguisher": {"FIRE EXTINGUISHER", "EXTINGUISHER", "FE"},
}

var accessibilityKeywords = []string{
	"ACCESSIBLE", "ADA", "AS1428", "DISABILITY", "HANDICAP", "HC",
}

var heightKeywords = []string{
	"HEIGHT", "CEILING HEIGHT", "CH", "FLOOR LEVEL", "FL", "RL",
	"ELEVATION", "ELEV",
}
var roofKeywords = []string{"ROOF", "RIDGE", "EAVE", "PITCH"}

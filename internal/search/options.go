package search

// Option is one fixed choice offered by the bot. Key travels in callback
// data; Label is what the user sees and what Filters store; Code is the
// hh.ru query value ("" means the label imposes no constraint).
type Option struct {
	Key   string
	Label string
	Code  string
}

// ExperienceOptions lists the hh.ru experience dictionary.
var ExperienceOptions = []Option{
	{Key: "any", Label: "Не имеет значения", Code: ""},
	{Key: "noExperience", Label: "Без опыта", Code: "noExperience"},
	{Key: "between1And3", Label: "От 1 года до 3 лет", Code: "between1And3"},
	{Key: "between3And6", Label: "От 3 до 6 лет", Code: "between3And6"},
	{Key: "moreThan6", Label: "Более 6 лет", Code: "moreThan6"},
}

// EmploymentOptions lists the hh.ru employment dictionary. "Стажировка"
// maps to the API code "probation" both here and in callback data.
var EmploymentOptions = []Option{
	{Key: "full", Label: "Полная занятость", Code: "full"},
	{Key: "part", Label: "Частичная занятость", Code: "part"},
	{Key: "probation", Label: "Стажировка", Code: "probation"},
}

// ScheduleOptions lists the hh.ru schedule dictionary.
var ScheduleOptions = []Option{
	{Key: "fullDay", Label: "Полный день", Code: "fullDay"},
	{Key: "shift", Label: "Сменный график", Code: "shift"},
	{Key: "flexible", Label: "Гибкий график", Code: "flexible"},
	{Key: "remote", Label: "Удаленная работа", Code: "remote"},
}

// OptionByKey returns the option with the given callback key.
func OptionByKey(options []Option, key string) (Option, bool) {
	for _, o := range options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// codeForLabel translates a stored label into its API code. Unknown labels
// translate to "" like the explicit "no constraint" choice.
func codeForLabel(options []Option, label string) string {
	for _, o := range options {
		if o.Label == label {
			return o.Code
		}
	}
	return ""
}

package dialogue

import "github.com/lxstatmose/edu-practice-parser/internal/search"

// Commands understood by the bot.
const (
	CmdStart  = "start"
	CmdSearch = "search"
	CmdSave   = "save"
	CmdExport = "export"
	CmdClear  = "clear"
)

// Callback data carried by inline buttons.
const (
	ChoiceSalary     = "filter:salary"
	ChoiceExperience = "filter:experience"
	ChoiceEmployment = "filter:employment"
	ChoiceSchedule   = "filter:schedule"
	ChoiceRunSearch  = "filter:search"
	ChoiceReset      = "filter:reset"
	ChoiceExportCSV  = "export:csv"
	ChoiceExportChat = "export:chat"

	prefixExperience = "exp:"
	prefixEmployment = "emp:"
	prefixSchedule   = "sch:"
)

// User-facing texts.
const (
	msgGreeting        = "Привет! Этот бот умеет парсить вакансии с hh.ru.\nВыберите команду:"
	msgIdleHint        = "Чтобы найти вакансии, отправьте /search."
	msgStaleButton     = "Это меню больше не активно. Отправьте /search."
	msgAskQuery        = "Введите название вакансии, которую вы хотите найти:"
	msgAskRegion       = "Введите регион для поиска вакансий:"
	msgAskCount        = "Введите количество вакансий, которое вы хотите получить (от 1 до 50):"
	msgCountNotNumber  = "Пожалуйста, введите числовое значение."
	msgCountNotPositiv = "Пожалуйста, введите положительное числовое значение."
	msgCountTooLarge   = "Можно запросить не более 50 вакансий. Введите число от 1 до 50."
	msgFilterMenu      = "Выберите фильтр:"
	msgAskSalary       = "Введите диапазон зарплаты в формате \"от-до\":"
	msgSalaryFormat    = "Пожалуйста, введите диапазон зарплаты в правильном формате \"от-до\"."
	msgSalaryNumbers   = "Пожалуйста, введите числовые значения."
	msgAskExperience   = "Выберите опыт работы:"
	msgAskEmployment   = "Выберите тип занятости:"
	msgAskSchedule     = "Выберите график работы:"
	msgFiltersReset    = "Фильтры сброшены."
	msgNotFound        = "Вакансии не найдены."
	msgSaved           = "Вакансии сохранены в базе данных."
	msgNothingToSave   = "Нет вакансий для сохранения."
	msgNothingToExport = "Нет данных для экспорта."
	msgExportMenu      = "Выберите вариант экспорта:"
	msgCleared         = "Все сохраненные вакансии были удалены."
	msgInternalError   = "Произошла ошибка, попробуйте позже."
)

// Button is one inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Document is a file to deliver. Cleanup, when set, must run after the
// file has been sent.
type Document struct {
	Path    string
	Name    string
	Cleanup func()
}

// Reply is one side effect for the transport to perform.
type Reply struct {
	Text string
	// Buttons is an inline keyboard, one slice per row.
	Buttons [][]Button
	// Commands is a one-time reply keyboard of command shortcuts.
	Commands []string
	// Edit replaces the message whose button was pressed instead of
	// sending a new one.
	Edit bool
	// Alert answers the pressed button with a popup instead of a message.
	Alert    bool
	Document *Document
}

func text(s string) Reply { return Reply{Text: s} }

func greeting() Reply {
	return Reply{
		Text:     msgGreeting,
		Commands: []string{"/" + CmdStart, "/" + CmdSearch, "/" + CmdSave, "/" + CmdExport, "/" + CmdClear},
	}
}

func filterMenu() Reply {
	return Reply{
		Text: msgFilterMenu,
		Buttons: [][]Button{
			{{Text: "Зарплата", Data: ChoiceSalary}},
			{{Text: "Опыт работы", Data: ChoiceExperience}},
			{{Text: "Тип занятости", Data: ChoiceEmployment}},
			{{Text: "График работы", Data: ChoiceSchedule}},
			{{Text: "Начать поиск", Data: ChoiceRunSearch}},
			{{Text: "Сбросить фильтры", Data: ChoiceReset}},
		},
	}
}

func optionMenu(prompt, prefix string, options []search.Option) Reply {
	rows := make([][]Button, 0, len(options))
	for _, o := range options {
		rows = append(rows, []Button{{Text: o.Label, Data: prefix + o.Key}})
	}
	return Reply{Text: prompt, Buttons: rows, Edit: true}
}

func exportMenu() Reply {
	return Reply{
		Text: msgExportMenu,
		Buttons: [][]Button{
			{{Text: "Экспорт в CSV", Data: ChoiceExportCSV}},
			{{Text: "Экспорт в чат", Data: ChoiceExportChat}},
		},
	}
}

package domain

// Callback data carried by menu buttons.
const (
	CallbackShowIndividual = "show_individual"
	CallbackBackToMain     = "back_to_main"
)

// Button is an inline keyboard button. Exactly one of URL or CallbackData is set.
type Button struct {
	Text         string
	URL          string
	CallbackData string
}

// View is the rendered content of a screen.
type View struct {
	Text     string
	Keyboard [][]Button
}

// Buttons flattens the keyboard rows.
func (v View) Buttons() []Button {
	var buttons []Button
	for _, row := range v.Keyboard {
		buttons = append(buttons, row...)
	}
	return buttons
}

// ScreenForCallback maps button callback data to the screen it opens.
func ScreenForCallback(data string) (Screen, bool) {
	switch data {
	case CallbackShowIndividual:
		return ScreenIndividualList, true
	case CallbackBackToMain:
		return ScreenMainMenu, true
	default:
		return "", false
	}
}

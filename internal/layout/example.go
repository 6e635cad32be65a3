package layout

// Example returns the two-page sample layout written by
// `macropad-cfg example`.
func Example() *Layout {
	l := New("Example Keyboard")

	mainPage := NewPage("Main")
	mainPage.Buttons = append(mainPage.Buttons,
		exampleButton("1", "VK_1", ActionSendKey, "#FFD700", 80, 80, 50, 50),
		exampleButton("2", "VK_2", ActionSendKey, "#FFA500", 80, 80, 150, 50),
		exampleButton("Copy", "CTRL+C", ActionCommandKey, "#87CEEB", 80, 80, 250, 50),
		exampleButton("PIN", "1234,ENTER", ActionSendValue, "#DA70D6", 80, 80, 350, 50),
		exampleButton("Next", "NextPage", ActionRunCommand, "#4169E1", 180, 60, 50, 150),
	)

	commands := NewPage("Commands")
	commands.Buttons = append(commands.Buttons,
		exampleButton("Cash Drawer", "open_cash_drawer", ActionRunCommand, "#32CD32", 150, 80, 50, 50),
		exampleButton("Main", "Main", ActionNavigate, "#FF8C00", 150, 80, 220, 50),
		exampleButton("Back", "PreviousPage", ActionRunCommand, "#808080", 150, 60, 50, 150),
		exampleButton("Exit", "EXIT", ActionRunCommand, "#B22222", 150, 60, 220, 150),
	)

	l.Pages = append(l.Pages, mainPage, commands)
	return l
}

func exampleButton(text, value string, action ActionKind, color string, w, h, x, y float64) Button {
	b := NewButton()
	b.Text = text
	b.Value = value
	b.Action = action
	b.Color = color
	b.Width, b.Height = w, h
	b.X, b.Y = x, y
	return b
}

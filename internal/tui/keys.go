package tui

// keyBinding pairs a key label with its description for the help screen.
type keyBinding struct {
	Key  string
	Desc string
}

var globalKeys = []keyBinding{
	{"1 / 2 / 3", "switch to search, boards, brands"},
	{"tab", "next tab"},
	{"a", "toggle activity panel"},
	{"r", "refresh current view"},
	{"?", "help"},
	{"L", "log out"},
	{"q", "quit"},
}

var searchKeys = []keyBinding{
	{"j / k", "move down / up"},
	{"g / G", "jump to top / bottom"},
	{"/", "edit keyword"},
	{"p", "cycle platform"},
	{"m", "cycle format"},
	{"o", "cycle sort order"},
	{"c", "clear all filters"},
	{"f", "filter loaded results locally"},
	{"enter", "load full detail"},
	{"s", "save ad to a board"},
}

var boardKeys = []keyBinding{
	{"enter", "open board"},
	{"h", "back to board list"},
	{"n", "new board"},
	{"x", "delete board / remove item"},
	{"] / [", "next / previous page"},
}

var brandKeys = []keyBinding{
	{"enter", "show collection stats"},
	{"x", "stop monitoring"},
}

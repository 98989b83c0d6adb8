package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	prevPage    key.Binding
	nextPage    key.Binding
	nextTab     key.Binding
	prevTab     key.Binding
	enter       key.Binding
	esc         key.Binding
	quit        key.Binding
	refresh     key.Binding
	pause       key.Binding
	selectRow   key.Binding
	toggleBan   key.Binding
	batchBan    key.Binding
	batchUnban  key.Binding
	applyPolicy key.Binding
	toggle      key.Binding
	add         key.Binding
	remove      key.Binding
	copy        key.Binding
	help        key.Binding
	version     key.Binding
	yes         key.Binding
	no          key.Binding
}

var keys = keyMap{
	up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	prevPage:    key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
	nextPage:    key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
	nextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	prevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "retry")),
	esc:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
	selectRow:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	toggleBan:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "ban/unban")),
	batchBan:    key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "ban selected")),
	batchUnban:  key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "unban selected")),
	applyPolicy: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply policies")),
	toggle:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enable/disable")),
	add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	remove:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
	copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy token")),
	help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	version:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "version")),
	yes:         key.NewBinding(key.WithKeys("y")),
	no:          key.NewBinding(key.WithKeys("n", "esc")),
}

// tabBindings lists the actions shown in the footer of each tab.
var tabBindings = map[tab][]key.Binding{
	tabTokens:   {keys.toggleBan, keys.selectRow, keys.batchBan, keys.batchUnban, keys.applyPolicy, keys.copy},
	tabPolicies: {keys.toggle},
	tabHistory:  {},
	tabGeo:      {keys.add, keys.remove},
	tabJournal:  {},
}

var globalBindings = []key.Binding{keys.nextTab, keys.prevPage, keys.nextPage, keys.refresh, keys.pause, keys.help, keys.quit}

type keyBindingGroup struct {
	title    string
	bindings []key.Binding
}

var helpGroups = []keyBindingGroup{
	{title: "Navigation", bindings: []key.Binding{keys.nextTab, keys.prevTab, keys.up, keys.down, keys.prevPage, keys.nextPage}},
	{title: "Sync", bindings: []key.Binding{keys.refresh, keys.pause, keys.enter, keys.esc}},
	{title: "Tokens", bindings: tabBindings[tabTokens]},
	{title: "Policies", bindings: tabBindings[tabPolicies]},
	{title: "Geo", bindings: tabBindings[tabGeo]},
	{title: "General", bindings: []key.Binding{keys.version, keys.help, keys.quit}},
}

package application

import "github.com/iordaniskot/registrar/internal/core"

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() error
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

// linkParents wires every submenu to its parent and points "Back"
// items at it.
func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(a *App) *Menu {
	root := &Menu{
		Title: "Student Records",
		Items: []MenuItem{
			{Label: "List records", Action: a.listRecords},
			{Label: "Record details", Action: a.showDetails},
			{Label: "Add record", Action: a.addRecord},
			{Label: "Edit record", Action: a.editRecord},
			{Label: "Delete record", Action: a.deleteRecord},
			{Label: "Search ->", Submenu: loadSearchMenu(a)},
			{Label: "Import ->", Submenu: loadImportMenu(a)},
			{Label: "Export roster", Action: a.exportRoster},
			{Label: "Archive ->", Submenu: loadArchiveMenu(a)},
			{Label: "Quit", Action: a.quitSession},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadSearchMenu(a *App) *Menu {
	return &Menu{
		Title: "Search",
		Items: []MenuItem{
			{Label: "By ID", Action: a.searchBy(core.SearchID)},
			{Label: "By name", Action: a.searchBy(core.SearchName)},
			{Label: "By surname", Action: a.searchBy(core.SearchSurname)},
			{Label: "By country", Action: a.searchBy(core.SearchCountry)},
			{Label: "Back"},
		},
	}
}

func loadImportMenu(a *App) *Menu {
	return &Menu{
		Title: "Import",
		Items: []MenuItem{
			{Label: "Replace roster", Action: a.importReplace},
			{Label: "Append to roster", Action: a.importAppend},
			{Label: "Back"},
		},
	}
}

func loadArchiveMenu(a *App) *Menu {
	return &Menu{
		Title: "Archive",
		Items: []MenuItem{
			{Label: "Save roster", Action: a.saveNow},
			{Label: "Operation history", Action: a.showHistory},
			{Label: "Reset roster", Action: a.resetRoster},
			{Label: "Back"},
		},
	}
}

package tui

const (
	statusHeight = 1
	listWidthMax = 40
)

// resizeComponents resizes all components based on current window size
func (m *Model) resizeComponents() {
	sidebarWidth := m.calculateSidebarWidth()
	listWidth := m.calculateListWidth()
	contentHeight := m.height - statusHeight

	// Each bordered panel loses 2 columns and 2 rows to its border
	m.account.SetSize(sidebarWidth-2, contentHeight-2)
	m.notes.SetSize(listWidth-2, contentHeight-2)
	m.preview.SetSize(m.previewWidth()-2, contentHeight-2)
	m.statusBar.SetSize(m.width)
	m.dialogManager.SetSize(m.width, m.height)
}

// calculateSidebarWidth calculates the appropriate sidebar width
func (m *Model) calculateSidebarWidth() int {
	if m.width < 80 {
		return 20
	}
	if m.width < 120 {
		return 25
	}
	return 30
}

func (m *Model) calculateListWidth() int {
	return min(max((m.width-m.calculateSidebarWidth())/3, 20), listWidthMax)
}

func (m *Model) previewWidth() int {
	return max(m.width-m.calculateSidebarWidth()-m.calculateListWidth(), 0)
}

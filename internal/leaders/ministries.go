package leaders

// MinistryCatalog lists the fixed ministry tags a leader can belong to.
var MinistryCatalog = []string{
	"Música",
	"Jovens",
	"Intercessão",
	"Famílias",
	"Infantil",
	"Homens",
	"Mulheres",
	"Diáconos",
	"Adolescentes",
	"Capelania",
	"Evangelismo",
}

// ToggleMinistry flips membership of a tag in a selection, preserving the
// insertion order of the remaining tags.
func ToggleMinistry(selected []string, name string) []string {
	for i, existing := range selected {
		if existing == name {
			return append(append([]string{}, selected[:i]...), selected[i+1:]...)
		}
	}
	return append(append([]string{}, selected...), name)
}

// HasMinistry reports membership of a tag in a selection.
func HasMinistry(selected []string, name string) bool {
	for _, existing := range selected {
		if existing == name {
			return true
		}
	}
	return false
}

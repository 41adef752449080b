package entities

// Translation is one overlay value: the text replacing RelatedField of the
// RelatedTable row identified by RelatedID.
type Translation struct {
	ID           int64
	RelatedTable string
	RelatedField string
	RelatedID    string
	Text         string
}

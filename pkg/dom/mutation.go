package dom

// MutationOp names a document mutation.
type MutationOp string

const (
	OpCreateElement  MutationOp = "create_element"
	OpCreateText     MutationOp = "create_text"
	OpSetText        MutationOp = "set_text"
	OpSetElementText MutationOp = "set_element_text"
	OpInsert         MutationOp = "insert"
	OpRemove         MutationOp = "remove"
	OpSetAttr        MutationOp = "set_attr"
	OpRemoveAttr     MutationOp = "remove_attr"
	OpSetProp        MutationOp = "set_prop"
	OpSetClass       MutationOp = "set_class"
	OpListen         MutationOp = "listen"
	OpUnlisten       MutationOp = "unlisten"
)

// Mutation describes one change to the document, in a form a remote
// client can replay. Node ids refer to Node.ID.
type Mutation struct {
	Op     MutationOp `json:"op"`
	ID     int        `json:"id"`
	Parent int        `json:"parent,omitempty"`
	Anchor int        `json:"anchor,omitempty"`
	Child  int        `json:"child,omitempty"`
	Tag    string     `json:"tag,omitempty"`
	Text   string     `json:"text,omitempty"`
	Name   string     `json:"name,omitempty"`
	Value  any        `json:"value,omitempty"`
}

// Observer receives every mutation in the order it is applied.
type Observer func(Mutation)

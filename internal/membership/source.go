package membership

type sourceKind int

const (
	kindEmpty sourceKind = iota
	kindText
	kindIDs
)

// Source is membership input as it arrives at a boundary: either legacy
// delimited text (forms, old rows, CLI arguments) or a native id list (JSON
// APIs). It is converted to a List exactly once through Normalize.
type Source struct {
	kind sourceKind
	text string
	ids  []uint64
}

// FromText wraps legacy delimited text.
func FromText(raw string) Source {
	return Source{kind: kindText, text: raw}
}

// FromIDs wraps a native id list.
func FromIDs(ids []uint64) Source {
	return Source{kind: kindIDs, ids: ids}
}

// IsZero reports whether no input was supplied at all.
func (s Source) IsZero() bool {
	return s.kind == kindEmpty
}

// Normalize converts the input to a List, dropping unreadable tokens and
// duplicate ids while keeping first-seen order.
func (s Source) Normalize() List {
	switch s.kind {
	case kindText:
		return dedupe(Parse(s.text))
	case kindIDs:
		return dedupe(s.ids)
	default:
		return List{}
	}
}

// NormalizeStrict is Normalize that rejects unreadable text tokens with a
// *MalformedError.
func (s Source) NormalizeStrict() (List, error) {
	if s.kind != kindText {
		return s.Normalize(), nil
	}
	ids, err := ParseStrict(s.text)
	if err != nil {
		return nil, err
	}
	return dedupe(ids), nil
}

func dedupe(ids []uint64) List {
	seen := make(map[uint64]struct{}, len(ids))
	out := make(List, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

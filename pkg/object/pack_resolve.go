package object

import "fmt"

// packKindToObjectType maps a base pack object type to the loose-object kind
// it ultimately resolves to. PackTag records resolve to tag objects; this
// core never creates tags of its own.
func packKindToObjectType(k PackObjectType) (ObjectType, error) {
	switch k {
	case PackCommit:
		return TypeCommit, nil
	case PackTree:
		return TypeTree, nil
	case PackBlob:
		return TypeBlob, nil
	case PackTag:
		return TypeTag, nil
	default:
		return "", fmt.Errorf("%w: not a base pack object type: %d", ErrCorruptPack, k)
	}
}

// ResolvedObject is a fully resolved object recovered from a pack: either a
// base record taken as-is, or a delta chain fully applied down to its base.
type ResolvedObject struct {
	Hash    Hash
	Type    ObjectType
	Payload []byte
}

// ResolvePack resolves every record in records to a concrete object,
// applying delta chains of arbitrary depth and order (spec.md §4.11). It
// repeats passes over the unresolved records until a pass makes no further
// progress; anything still unresolved after that is ErrUnresolvedDelta.
//
// The fixed-point approach is required because deltas may reference bases
// that appear later in the pack, or chain delta-on-delta several records
// deep; a single linear pass cannot assume a base is ready before its delta.
func ResolvePack(records []PackRecord) ([]ResolvedObject, error) {
	byOffset := make(map[uint64]ResolvedObject, len(records))
	byHash := make(map[Hash]ResolvedObject, len(records))

	pending := make([]PackRecord, 0, len(records))
	resolved := make([]ResolvedObject, 0, len(records))

	for _, rec := range records {
		if !rec.IsDelta {
			typ, err := packKindToObjectType(rec.Kind)
			if err != nil {
				return nil, err
			}
			h := HashObject(typ, rec.Data)
			ro := ResolvedObject{Hash: h, Type: typ, Payload: rec.Data}
			resolved = append(resolved, ro)
			byOffset[rec.Offset] = ro
			byHash[h] = ro
			continue
		}
		pending = append(pending, rec)
	}

	for len(pending) > 0 {
		next := pending[:0:0]
		progressed := false

		for _, rec := range pending {
			var base ResolvedObject
			var ok bool
			if rec.Kind == PackOfsDelta {
				base, ok = byOffset[rec.BaseOffset]
			} else {
				base, ok = byHash[rec.BaseHash]
			}
			if !ok {
				next = append(next, rec)
				continue
			}

			target, err := applyDelta(base.Payload, rec.Data)
			if err != nil {
				return nil, err
			}
			h := HashObject(base.Type, target)
			ro := ResolvedObject{Hash: h, Type: base.Type, Payload: target}
			resolved = append(resolved, ro)
			byOffset[rec.Offset] = ro
			byHash[h] = ro
			progressed = true
		}

		if !progressed {
			return nil, fmt.Errorf("%w: %d delta record(s) never reached a base", ErrUnresolvedDelta, len(next))
		}
		pending = next
	}

	return resolved, nil
}

package object

// Equal implements the value-equality relation of spec.md §4.6. Two
// values compare equal iff they have the same Kind and, per kind:
//
//	Integer/Boolean/String: payload-equal
//	Null:                   always
//	Array:                  same length, element-wise equal
//	Hash:                   same size, every left key has an equal key in
//	                        right with an equal value
//	Function/Builtin:       never equal
//	ReturnValue:            inner values equal
//	Error:                  messages equal
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Integer:
		return av.Value == b.(*Integer).Value
	case *Boolean:
		return av.Value == b.(*Boolean).Value
	case *Null:
		return true
	case *String:
		return av.Value == b.(*String).Value
	case *Array:
		bv := b.(*Array)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i, e := range av.Elements {
			if !Equal(e, bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Hash:
		bv := b.(*Hash)
		if len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for k, pair := range av.Pairs {
			otherPair, ok := bv.Pairs[k]
			if !ok || !Equal(pair.Value, otherPair.Value) {
				return false
			}
		}
		return true
	case *Function, *Builtin:
		return false
	case *ReturnValue:
		return Equal(av.Value, b.(*ReturnValue).Value)
	case *Error:
		return av.Message == b.(*Error).Message
	default:
		return false
	}
}

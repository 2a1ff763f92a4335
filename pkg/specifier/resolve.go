// SPDX-License-Identifier: MPL-2.0

package specifier

import "github.com/invowk/pkgsurface/pkg/condition"

// Resolve evaluates v against the active conditions and returns the selected
// target path. ok is false when the value is null, an empty list, or a
// condition map none of whose keys is active.
//
// Condition maps are scanned in declaration order and the first active key
// wins, even when a later key would also match: {"default": A, "node": B}
// always resolves to A.
func Resolve(v Value, conditions condition.Set) (path string, ok bool) {
	switch v := v.(type) {
	case nil, Null:
		return "", false
	case Literal:
		return string(v), true
	case List:
		// Fallback lists are not evaluated beyond their first element; what a
		// loader should do with the remaining entries is undecided upstream.
		if len(v) == 0 {
			return "", false
		}
		return Resolve(v[0], conditions)
	case ConditionMap:
		for _, f := range v {
			if conditions.Has(f.Key) {
				return Resolve(f.Value, conditions)
			}
		}
		return "", false
	default:
		return "", false
	}
}

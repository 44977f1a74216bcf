package store

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Mem is an in-memory Store used by the tests. It keeps documents as bson.M
// in insertion order and understands the filter subset the registry and
// handlers actually issue: equality, $or, $ne, $in, $nin, $gte, $gt, $lt,
// $lte and $regex (with "i" option). Projections are ignored; decoding into
// typed structs drops unrequested fields anyway.
type Mem struct {
	mu    sync.RWMutex
	colls map[string][]bson.M
}

func NewMem() *Mem {
	return &Mem{colls: make(map[string][]bson.M)}
}

func (m *Mem) Insert(_ context.Context, collection string, doc any) error {
	d, err := toDoc(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colls[collection] = append(m.colls[collection], d)
	return nil
}

func (m *Mem) Find(_ context.Context, collection string, filter bson.M, opts *FindOptions, out any) error {
	m.mu.RLock()
	matched := m.matchLocked(collection, filter)
	m.mu.RUnlock()

	if opts != nil {
		if opts.Sort != nil {
			sortDocs(matched, opts.Sort)
		}
		if opts.Skip > 0 {
			if opts.Skip >= int64(len(matched)) {
				matched = nil
			} else {
				matched = matched[opts.Skip:]
			}
		}
		if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
			matched = matched[:opts.Limit]
		}
	}
	return decodeDocs(matched, out)
}

func (m *Mem) FindOne(_ context.Context, collection string, filter bson.M, opts *FindOptions, out any) error {
	m.mu.RLock()
	matched := m.matchLocked(collection, filter)
	m.mu.RUnlock()

	if opts != nil && opts.Sort != nil {
		sortDocs(matched, opts.Sort)
	}
	if len(matched) == 0 {
		return ErrNotFound
	}
	return decodeDoc(matched[0], out)
}

func (m *Mem) Count(_ context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.matchLocked(collection, filter))), nil
}

func (m *Mem) Distinct(_ context.Context, collection, field string, filter bson.M) ([]any, error) {
	m.mu.RLock()
	matched := m.matchLocked(collection, filter)
	m.mu.RUnlock()

	seen := make(map[string]bool)
	var vals []any
	for _, doc := range matched {
		v, ok := doc[field]
		if !ok || v == nil {
			continue
		}
		key := fmt.Sprintf("%v", normalize(v))
		if !seen[key] {
			seen[key] = true
			vals = append(vals, v)
		}
	}
	return vals, nil
}

func (m *Mem) Update(_ context.Context, collection string, filter bson.M, update bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.colls[collection] {
		if !matches(doc, filter) {
			continue
		}
		if set, ok := update["$set"].(bson.M); ok {
			for k, v := range set {
				nv, err := toValue(v)
				if err != nil {
					return 0, err
				}
				doc[k] = nv
			}
		}
		if unset, ok := update["$unset"].(bson.M); ok {
			for k := range unset {
				delete(doc, k)
			}
		}
		return 1, nil
	}
	return 0, nil
}

func (m *Mem) Delete(_ context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.colls[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			m.colls[collection] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *Mem) matchLocked(collection string, filter bson.M) []bson.M {
	var matched []bson.M
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	return matched
}

func toDoc(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var d bson.M
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// toValue round-trips a single value through bson so stored values always
// have driver-native types (int32/int64, nil for null pointers).
func toValue(v any) (any, error) {
	d, err := toDoc(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return d["v"], nil
}

func decodeDocs(docs []bson.M, out any) error {
	slice := reflect.ValueOf(out).Elem()
	elem := slice.Type().Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		v := reflect.New(elem)
		if err := bson.Unmarshal(raw, v.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, v.Elem())
	}
	slice.Set(result)
	return nil
}

func decodeDoc(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func matches(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		if key == "$or" {
			if !matchOr(doc, cond) {
				return false
			}
			continue
		}
		val := doc[key]
		if ops, ok := asFilter(cond); ok && hasOperator(ops) {
			if !applyOps(val, ops) {
				return false
			}
			continue
		}
		if !equal(val, cond) {
			return false
		}
	}
	return true
}

func matchOr(doc bson.M, cond any) bool {
	branches := reflect.ValueOf(cond)
	if branches.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < branches.Len(); i++ {
		if sub, ok := asFilter(branches.Index(i).Interface()); ok && matches(doc, sub) {
			return true
		}
	}
	return false
}

func asFilter(v any) (bson.M, bool) {
	switch f := v.(type) {
	case bson.M:
		return f, true
	case map[string]any:
		return bson.M(f), true
	}
	return nil, false
}

func hasOperator(f bson.M) bool {
	for k := range f {
		if strings.HasPrefix(k, "$") {
			return true
		}
	}
	return false
}

func applyOps(val any, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$ne":
			if equal(val, arg) {
				return false
			}
		case "$in":
			if !inList(val, arg) {
				return false
			}
		case "$nin":
			if inList(val, arg) {
				return false
			}
		case "$gte":
			if c, ok := compare(val, arg); !ok || c < 0 {
				return false
			}
		case "$gt":
			if c, ok := compare(val, arg); !ok || c <= 0 {
				return false
			}
		case "$lt":
			if c, ok := compare(val, arg); !ok || c >= 0 {
				return false
			}
		case "$lte":
			if c, ok := compare(val, arg); !ok || c > 0 {
				return false
			}
		case "$regex":
			pattern, _ := arg.(string)
			if opt, _ := ops["$options"].(string); strings.Contains(opt, "i") {
				pattern = "(?i)" + pattern
			}
			s, ok := val.(string)
			if !ok {
				return false
			}
			re, err := regexp.Compile(pattern)
			if err != nil || !re.MatchString(s) {
				return false
			}
		case "$options":
			// consumed alongside $regex
		default:
			return false
		}
	}
	return true
}

func inList(val any, arg any) bool {
	list := reflect.ValueOf(arg)
	if list.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < list.Len(); i++ {
		if equal(val, list.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func equal(a, b any) bool {
	na, nb := normalize(a), normalize(b)
	if na == nil || nb == nil {
		return na == nb
	}
	if c, ok := compare(a, b); ok {
		return c == 0
	}
	return na == nb
}

// compare orders two values when both are numbers or both are strings.
func compare(a, b any) (int, bool) {
	na, nb := normalize(a), normalize(b)
	if fa, ok := na.(float64); ok {
		if fb, ok := nb.(float64); ok {
			switch {
			case fa < fb:
				return -1, true
			case fa > fb:
				return 1, true
			}
			return 0, true
		}
	}
	if sa, ok := na.(string); ok {
		if sb, ok := nb.(string); ok {
			return strings.Compare(sa, sb), true
		}
	}
	return 0, false
}

func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case float32:
		return float64(n)
	case *string:
		if n == nil {
			return nil
		}
		return *n
	case *int:
		if n == nil {
			return nil
		}
		return float64(*n)
	}
	return v
}

func sortDocs(docs []bson.M, order bson.D) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, key := range order {
			dir := 1
			if d, ok := normalize(key.Value).(float64); ok && d < 0 {
				dir = -1
			}
			c, ok := compare(docs[i][key.Key], docs[j][key.Key])
			if !ok || c == 0 {
				continue
			}
			return c*dir < 0
		}
		return false
	})
}

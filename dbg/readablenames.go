package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary values into random readable names. It flagrantly
// leaks memory but generates the names lazily, so it's not a problem unless
// you're actually using it. This is helpful for telling faces and points apart
// in debug output, where a long run of ids is hard to read.

var (
	memo map[interface{}]string
	// Arrangements owned by different goroutines share the memo
	memoLock sync.Mutex
)

func init() {
	memo = make(map[interface{}]string)
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	switch v := reflect.ValueOf(obj); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return "Ø"
		}
	}

	// Values that can't be map keys are named by their address (slices, maps)
	// or by their printed form (anything else).
	key := obj
	if v := reflect.ValueOf(obj); !v.Type().Comparable() {
		switch v.Kind() {
		case reflect.Slice, reflect.Map, reflect.Func:
			key = v.Pointer()
		default:
			key = fmt.Sprintf("%#v", obj)
		}
	}

	memoLock.Lock()
	defer memoLock.Unlock()
	if r, ok := memo[key]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[key] = r
	return r
}

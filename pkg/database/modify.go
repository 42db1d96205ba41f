package database

import (
	"fmt"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/generics"
)

// MaxRetries limits the number of retries of CreateOrModify
// caused by concurrent modifications.
const MaxRetries = 10

// CreateOrModify stores the given object if it does not exist, yet.
// Otherwise, mod is applied to the stored version, which is written
// back if mod reports a change. On success obj is set to the stored
// version. O must be a sub type of DBO.
func CreateOrModify[O Object, DBO Object](db Database[DBO], obj *O, mod func(O) bool) (bool, error) {
	for i := 0; ; i++ {
		cur, created, err := current[O](db, *obj)
		if err != nil {
			return false, err
		}
		if !mod(cur) && !created {
			*obj = cur
			return false, nil
		}
		err = db.SetObject(generics.Cast[DBO](cur))
		if err == nil {
			*obj = cur
			return true, nil
		}
		if !errors.Is(err, ErrModified) || i >= MaxRetries {
			return false, err
		}
		log.Debug("object {{id}} modified concurrently, retrying", "id", StringId(cur))
	}
}

func current[O Object, DBO Object](db Database[DBO], o O) (O, bool, error) {
	var _nil O

	stored, err := db.GetObject(o)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return o, true, nil
		}
		return _nil, false, err
	}
	cur, ok := generics.TryCast[O](stored)
	if !ok {
		return _nil, false, fmt.Errorf("non-matching Go type %T for %q", stored, stored.GetType())
	}
	return cur, false, nil
}

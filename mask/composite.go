package mask

// DefineComposite defines name as the OR of the already defined members and
// returns the resulting value. A composite behaves like any other bit: it is
// enabled in a mask as soon as one of its member bits is.
func (k *Kind) DefineComposite(name string, members ...string) (uint64, error) {
	if len(members) == 0 {
		return 0, ErrArity
	}

	value, err := k.resolve(members)
	if err != nil {
		return 0, err
	}

	if err := k.DefineBit(name, value); err != nil {
		return 0, err
	}

	return value, nil
}

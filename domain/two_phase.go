package domain

// TwoPhase applies two single-document writes that together form one logical
// change (follow edges, favorite mirrors, recipe links). There is no rollback:
// when first fails nothing was written and its error is returned as is; when
// second fails the store is left half applied, onPartial is told, and the
// caller gets a dependency failure carrying the cause.
func TwoPhase(first, second func() error, onPartial func(err error)) error {
	if err := first(); err != nil {
		return err
	}
	if err := second(); err != nil {
		if onPartial != nil {
			onPartial(err)
		}
		if KindOf(err) == KindDependency {
			return err
		}
		return DependencyFailure("change partially applied", err)
	}
	return nil
}

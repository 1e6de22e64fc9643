package pipelog

// ALL_SOURCES is the filter key that applies to every source.
const ALL_SOURCES = ""

func (lf *levelFilter) accepts(level string) bool {
	if lf == nil {
		return false
	}
	if lf.all {
		return true
	}
	_, ok := lf.levels[level]
	return ok
}

// merge adds one registration entry to the set. An entry never narrows a
// source that already accepts all levels; an entry with no levels widens a
// source to accept all levels.
func (f filterSet) merge(spec FilterSpec) {
	sources := spec.Sources
	if len(sources) == 0 {
		sources = []string{ALL_SOURCES}
	}
	for _, source := range sources {
		lf := f[source]
		if lf != nil && lf.all {
			continue
		}
		if lf == nil {
			lf = &levelFilter{}
			f[source] = lf
		}
		if len(spec.Levels) == 0 {
			lf.all = true
			lf.levels = nil
			continue
		}
		if lf.levels == nil {
			lf.levels = make(map[string]struct{}, len(spec.Levels))
		}
		for _, level := range spec.Levels {
			lf.levels[level] = struct{}{}
		}
	}
}

// matches reports whether a message of the given source and level passes
// the set: either through the all-sources key or through its own source key.
func (f filterSet) matches(source, level string) bool {
	return f[ALL_SOURCES].accepts(level) || f[source].accepts(level)
}

func newFilterSet(specs []FilterSpec) filterSet {
	f := filterSet{}
	for _, spec := range specs {
		f.merge(spec)
	}
	return f
}

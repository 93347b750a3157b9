package snapshot

type StoreOptions struct {
	// Prefix is prepended to every key. Defaults to DefaultPrefix.
	Prefix string
}

type StoreOption func(*StoreOptions)

func WithPrefix(prefix string) StoreOption {
	return func(o *StoreOptions) {
		o.Prefix = prefix
	}
}

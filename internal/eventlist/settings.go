package eventlist

// Settings is the compiler configuration threaded through generation. The
// generator passes it along unchanged; only the tinysample duration is
// consumed in this module, by the branch timing resolver.
type Settings struct {
	// TinySample is the duration of one tinysample in seconds.
	TinySample float64
}

// DefaultTinySample is one tinysample on the standard instrument family's
// common 3.6 GHz time base.
const DefaultTinySample = 1.0 / 3.6e9

// DefaultSettings returns the settings used when the caller provides none.
func DefaultSettings() Settings {
	return Settings{TinySample: DefaultTinySample}
}

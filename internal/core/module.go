package core

// ModuleID uniquely identifies a module, namespaced by kind
// (e.g. "channel.telegram", "client.gotd", "sink.sheets").
type ModuleID string

// ModuleInfo describes a registered module.
type ModuleInfo struct {
	// ID is the unique module identifier.
	ID ModuleID

	// New returns a fresh, unconfigured instance of the module.
	New func() Module
}

// Module is the minimal interface every groupscout module implements.
// Optional lifecycle behaviour is added through Configurable, Provisioner,
// Validator, Starter, and Stopper.
type Module interface {
	ModuleInfo() ModuleInfo
}

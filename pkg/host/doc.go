// Package host describes the host framework that minitap instruments: the two
// construction entry points (application and page), the definitions passed to
// them and the runtime instances they produce.
//
// Host keeps the entry points behind explicit decorator chains so that an
// extension can intercept declarations without replacing the host's own
// constructors. Simulator is a small in-process host used by tests and by the
// replay command.
package host

// Package notify is the runtime used by code that notifygen generates.
//
// Types with fields marked //notify:observable embed PropertyChangedEvent;
// the generated setters call RaisePropertyChanged after every assignment.
// Methods marked //notify:command are exposed through accessors returning a
// Command, built lazily from NewRelayCommand or NewRelayCommandOf.
//
// By default notifygen copies this package's runtime source into every
// package it generates for, so generated code has no dependency on this
// module. With the "import" runtime mode generated code imports this package
// instead.
package notify

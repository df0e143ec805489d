// Package authflow implements the login/registration dialog of the forum
// client.
//
// A Dialog owns its form fields, the current mode and the submitting flag.
// Submit validates the form locally, makes exactly one call to the auth
// endpoint, persists the resulting session through the injected
// session.Store and then reports the outcome through a Notifier and the
// success callback supplied by the shell when the dialog was opened.
//
// Every submission captures the dialog generation. Closing or reopening the
// dialog advances the generation, so a response that arrives for an older
// generation is dropped without touching storage, the callback or the
// notifier.
package authflow

package client

// NoopAudioSink always resumes successfully. Used where no playback device
// needs unlocking, and as the default for headless clients.
type NoopAudioSink struct{}

func (NoopAudioSink) Resume() error { return nil }

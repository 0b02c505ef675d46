package entities

// Stage names one step of the provisioning progress protocol
type Stage string

// Progress stages, in the order the pipeline can emit them
const (
	StageRead     Stage = "read"
	StageReturn   Stage = "return"
	StageTouch    Stage = "touch"
	StageVersion  Stage = "version"
	StageRedirect Stage = "redirect"
	StageDownload Stage = "download"
	StageWrite    Stage = "write"
	StageMod      Stage = "mod"
	StageRun      Stage = "run"
)

// IsTerminal reports whether the stage ends the sequence
func (s Stage) IsTerminal() bool {
	return s == StageReturn
}

// Progress is one notification of the progress protocol.
// Pair is set only on the terminal "return" stage.
type Progress struct {
	Stage Stage
	Pair  *KeyCertPair
}

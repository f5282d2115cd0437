package release

//go:generate mockgen -destination=../mock/release/mock_release.go -package=mock_release . Prompter

// Prompter interface for the interactive confirmation gate
type Prompter interface {
	Confirm(prompt string) (bool, error)
}

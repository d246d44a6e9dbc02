package editor

import "context"

// PromptObserver is notified after every keystroke of a prompt, including
// the one that ends it.
type PromptObserver interface {
	OnKeystroke(input string, key Key)
}

// PromptObserverFunc adapts a function to PromptObserver.
type PromptObserverFunc func(input string, key Key)

// OnKeystroke calls f(input, key).
func (f PromptObserverFunc) OnKeystroke(input string, key Key) { f(input, key) }

// Prompt reads a line in the message bar, shown as label+input+hint. Enter
// with non-empty input returns it; Escape returns "". obs may be nil.
func (e *Editor) Prompt(ctx context.Context, label, hint string, obs PromptObserver) (string, error) {
	var input []byte
	notify := func(key Key) {
		if obs != nil {
			obs.OnKeystroke(string(input), key)
		}
	}

	for {
		e.SetStatusMessage(label + string(input) + hint)
		if err := e.Refresh(); err != nil {
			return "", err
		}

		key, err := e.readKey(ctx)
		if err != nil {
			return "", err
		}

		switch {
		case key == DeleteKey || key == CtrlKey('h') || key == KeyBackspace:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case key == KeyEscape:
			e.SetStatusMessage("")
			notify(key)
			return "", nil
		case key == KeyEnter:
			if len(input) > 0 {
				e.SetStatusMessage("")
				notify(key)
				return string(input), nil
			}
		case key.isPrintable():
			input = append(input, byte(key))
		}

		notify(key)
	}
}

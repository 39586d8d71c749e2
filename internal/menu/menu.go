package menu

import (
	"context"
	"errors"
	"io"
	"strconv"
)

// Option is one numbered menu entry.
type Option struct {
	Label string
	Run   func(ctx context.Context) error
}

// Menu is a numbered list of options followed by an exit entry. Options are
// numbered from 1 in order; the exit entry takes the next number.
type Menu struct {
	Title   string
	Prompt  string
	Options []Option
	Exit    string
	// Goodbye is printed when the exit entry is chosen. Optional.
	Goodbye string
}

// Run displays the menu and dispatches choices until the exit entry is
// chosen or input ends. Both return nil. An option error other than io.EOF
// stops the loop and is returned.
func (m *Menu) Run(ctx context.Context, p *Prompter) error {
	exit := len(m.Options) + 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.display(p)
		line, err := p.Line(m.Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(line)
		switch {
		case err != nil || choice < 1 || choice > exit:
			p.Println("Invalid choice! Try again.")
			continue
		case choice == exit:
			if m.Goodbye != "" {
				p.Println(m.Goodbye)
			}
			return nil
		}

		err = m.Options[choice-1].Run(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) display(p *Prompter) {
	p.Println(m.Title)
	for i, opt := range m.Options {
		p.Printf("%d. %s\n", i+1, opt.Label)
	}
	p.Printf("%d. %s\n", len(m.Options)+1, m.Exit)
}

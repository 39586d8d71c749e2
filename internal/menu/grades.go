package menu

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

// Grades drives the student records menu over a gradebook.
type Grades struct {
	store types.Gradebook
	p     *Prompter
	log   *zap.Logger
}

// NewGrades returns a controller for store.
func NewGrades(store types.Gradebook, p *Prompter, log *zap.Logger) *Grades {
	return &Grades{store: store, p: p, log: log}
}

// Run loops over the grades menu until exit or end of input.
func (c *Grades) Run(ctx context.Context) error {
	m := &Menu{
		Title:  "Student Grade Management System",
		Prompt: "Select an option: ",
		Options: []Option{
			{Label: "Add Student", Run: c.addStudent},
			{Label: "Add Grade", Run: c.addGrade},
			{Label: "Display Student Records", Run: c.display},
		},
		Exit:    "Exit",
		Goodbye: "Exiting the application, Thank you.",
	}
	return m.Run(ctx, c.p)
}

func (c *Grades) addStudent(ctx context.Context) error {
	name, err := c.p.Line("Enter the student name: ")
	if err != nil {
		return err
	}
	id, err := c.p.IntRetry("Enter Student ID: ")
	if err != nil {
		return err
	}

	err = c.store.AddStudent(types.Student{ID: id, Name: name})
	if errors.Is(err, types.ErrDuplicateID) {
		c.log.Debug("student rejected", zap.Int("id", id), zap.Error(err))
		c.p.Println("Student with the same ID already exists!")
		return nil
	}
	if err != nil {
		return err
	}
	c.log.Debug("student added", zap.Int("id", id), zap.String("name", name))
	c.p.Println("Student added successfully!")
	return nil
}

// selectStudent reads a 1-based position into a list of n students,
// re-prompting until one is in range.
func (c *Grades) selectStudent(n int) (int, error) {
	for {
		pos, err := c.p.IntRetry("Enter the student number: ")
		if err != nil {
			return 0, err
		}
		if pos >= 1 && pos <= n {
			return pos, nil
		}
		c.p.Printf("Invalid selection! Choose a number from 1 to %d.\n", n)
	}
}

func (c *Grades) addGrade(ctx context.Context) error {
	students, err := types.Collect(c.store.Students())
	if err != nil {
		return err
	}
	if len(students) == 0 {
		c.p.Println("No students found!")
		return nil
	}

	c.p.Println("Select a student:")
	for i, st := range students {
		c.p.Printf("%d. %s (ID: %d)\n", i+1, st.Name, st.ID)
	}
	pos, err := c.selectStudent(len(students))
	if err != nil {
		return err
	}
	id := students[pos-1].ID

	subject, err := c.p.Line("Enter the subject: ")
	if err != nil {
		return err
	}
	score, err := c.p.FloatRetry("Enter the score: ")
	if err != nil {
		return err
	}

	st, err := c.store.AddGrade(id, types.Grade{Subject: subject, Score: score})
	if err != nil {
		return err
	}
	c.log.Debug("grade added",
		zap.Int("id", st.ID),
		zap.String("subject", subject),
		zap.Float64("score", score),
		zap.Int("grades", len(st.Grades)),
	)
	c.p.Println("Grade added successfully!")
	return nil
}

func (c *Grades) display(ctx context.Context) error {
	students, err := types.Collect(c.store.Students())
	if err != nil {
		return err
	}
	if len(students) == 0 {
		c.p.Println("No students found!")
		return nil
	}

	for _, st := range students {
		c.p.Printf("Name: %s, ID: %d\n", st.Name, st.ID)
		c.p.Println("Grades:")
		if len(st.Grades) == 0 {
			c.p.Println("No grades available.")
		} else {
			for _, g := range st.Grades {
				c.p.Printf("Subject: %s, Score: %s\n", g.Subject, formatScore(g.Score))
			}
			c.p.Printf("Average Score: %.2f\n", st.Average())
		}
		c.p.Println(strings.Repeat("-", 30))
	}
	return nil
}

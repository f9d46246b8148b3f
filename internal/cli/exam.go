package cli

import (
	"fmt"
	"time"

	"github.com/RugvedaRao/StudyLog/internal/countdown"
)

type ExamSetCmd struct {
	Date string `arg:"" help:"Exam date as DD-MM-YYYY."`
}

func (c *ExamSetCmd) Run(ctx *Context) error {
	iso, err := countdown.ParseDDMMYYYY(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.SaveExamDate(iso); err != nil {
		return err
	}

	remaining, err := countdown.Until(iso, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Exam date set to %s (%s to go)\n", c.Date, remaining)
	return nil
}

type ExamShowCmd struct{}

func (c *ExamShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	iso, ok, err := ctx.Store.GetExamDate()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No exam date set. Use 'studylog exam set DD-MM-YYYY'.")
		return nil
	}

	remaining, err := countdown.Until(iso, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Exam: %s (%s to go)\n", countdown.FormatDDMMYYYY(iso), remaining)
	return nil
}

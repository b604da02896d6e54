package habits

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/streakmate/internal/cli"
	"github.com/julianstephens/streakmate/internal/models"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	List       HabitListCmd       `cmd:"" help:"List habits with streak and status."`
	Complete   HabitCompleteCmd   `cmd:"" help:"Mark a habit done for a day."`
	Uncomplete HabitUncompleteCmd `cmd:"" help:"Remove a completion for a day."`
	Today      HabitTodayCmd      `cmd:"" help:"Show today's habit status."`
	Log        HabitLogCmd        `cmd:"" help:"Show habit log (ASCII history)."`
	Delete     HabitDeleteCmd     `cmd:"" help:"Delete a habit and its records."`
	Show       HabitShowCmd       `cmd:"" help:"Show one habit in detail."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description."`
	Frequency   string `help:"daily or weekly." enum:"daily,weekly" default:"daily"`
	Target      int    `help:"Completions per week (weekly habits only)." default:"1"`
	Time        string `help:"Due-by time (HH:MM)."`
	From        string `name:"from" help:"Window start (HH:MM, requires --to)."`
	To          string `name:"to" help:"Window end, the due-by instant (HH:MM, requires --from)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Service.CreateHabit(models.Habit{
		Name:        c.Name,
		Description: c.Description,
		Frequency:   models.Frequency(c.Frequency),
		Target:      c.Target,
		Time:        c.Time,
		TimeFrom:    c.From,
		TimeTo:      c.To,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct {
	Status string `help:"Filter by status (pending, completed, missed)." enum:",pending,completed,missed" default:""`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Service.ListHabits()
	if err != nil {
		return err
	}

	if c.Status != "" {
		habits = slices.DeleteFunc(habits, func(h models.Habit) bool {
			return h.Status != models.Status(c.Status)
		})
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		fmt.Println(cli.FormatHabitLine(habit))
	}
	return nil
}

type HabitCompleteCmd struct {
	Name string `arg:"" help:"Habit name or id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitCompleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Service.Complete(c.Name, c.Date)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = "today"
	}
	fmt.Printf("Marked habit %q done for %s (streak %d)\n", habit.Name, day, habit.Streak)
	return nil
}

type HabitUncompleteCmd struct {
	Name string `arg:"" help:"Habit name or id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitUncompleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Service.Uncomplete(c.Name, c.Date)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = "today"
	}
	fmt.Printf("Unmarked habit %q for %s\n", habit.Name, day)
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Service.ListHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", time.Now().Format("2006-01-02"))
	completed := 0
	for _, habit := range habits {
		marker := "[ ]"
		switch habit.Status {
		case models.StatusCompleted:
			marker = "[x]"
			completed++
		case models.StatusMissed:
			marker = "[!]"
		}
		fmt.Printf("%s %s\n", marker, habit.Name)
	}

	fmt.Printf("\nCompleted: %d/%d\n", completed, len(habits))
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Service.ListHabits()
	if err != nil {
		return err
	}

	if c.Habit != "" {
		habit, err := ctx.Service.GetHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{habit}
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	endDay := time.Now()
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	const maxNameLen = 20
	fmt.Print("Habit               ")
	for i := 0; i < c.Days; i++ {
		fmt.Printf(" %5s", startDay.AddDate(0, 0, i).Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", maxNameLen+c.Days*6))

	for _, habit := range habits {
		name := habit.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		} else {
			name += strings.Repeat(" ", maxNameLen-len(name))
		}
		fmt.Print(name)

		done := make(map[string]bool, len(habit.CompletedDates))
		for _, day := range habit.CompletedDates {
			done[day] = true
		}

		for i := 0; i < c.Days; i++ {
			day := startDay.AddDate(0, 0, i).Format("2006-01-02")
			if done[day] {
				fmt.Print("  x   ")
			} else {
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}

	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	if err := ctx.Service.DeleteHabit(c.Name); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %q and its records\n", c.Name)
	return nil
}

type HabitShowCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Service.GetHabit(c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Name:        %s\n", habit.Name)
	if habit.Description != "" {
		fmt.Printf("Description: %s\n", habit.Description)
	}
	fmt.Printf("Frequency:   %s\n", habit.Frequency)
	if habit.Frequency == models.FrequencyWeekly {
		fmt.Printf("Target:      %d/week\n", habit.Target)
	}
	if habit.HasTimeWindow() {
		fmt.Printf("Window:      %s-%s\n", habit.TimeFrom, habit.TimeTo)
	} else if habit.Time != "" {
		fmt.Printf("Due by:      %s\n", habit.Time)
	}
	fmt.Printf("Status:      %s\n", habit.Status)
	fmt.Printf("Streak:      %d\n", habit.Streak)
	if habit.RestoredOn != "" {
		fmt.Printf("Restored on: %s\n", habit.RestoredOn)
	}
	fmt.Printf("Completions: %d\n", len(habit.CompletedDates))
	fmt.Printf("Created:     %s\n", habit.CreatedAt.Format("2006-01-02"))
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kalambet/ecoquest/internal/config"
	"github.com/kalambet/ecoquest/internal/ecoapi"
	"github.com/kalambet/ecoquest/internal/location"
	"github.com/kalambet/ecoquest/internal/orchestrator"
	"github.com/kalambet/ecoquest/internal/profile"
	"github.com/kalambet/ecoquest/internal/screen"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive EcoQuest session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		initLogging(cfg)

		orch := buildOrchestrator(cfg)
		s := &session{orch: orch, in: bufio.NewReader(os.Stdin)}
		return s.loop(cmd.Context())
	},
}

func buildOrchestrator(cfg config.Config) *orchestrator.Orchestrator {
	client := ecoapi.New(cfg.API.BaseURL, cfg.API.TimeoutDuration())

	var resolver *location.Resolver
	if cfg.Location.Enabled {
		resolver = location.NewResolver(
			location.FixedGate(true),
			location.StaticPosition{Lat: cfg.Location.Lat, Lon: cfg.Location.Lon},
			location.NewNominatim(cfg.Geocoder.BaseURL),
			slog.Default(),
		)
	}

	return orchestrator.New(client, screen.NewMachine(), resolver, slog.Default())
}

// session drives the screen machine from stdin, one prompt per screen.
type session struct {
	orch *orchestrator.Orchestrator
	in   *bufio.Reader
}

func (s *session) loop(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nGoodbye!")
			return nil
		default:
		}

		var err error
		switch s.orch.Screen() {
		case screen.Welcome:
			err = s.welcome(ctx)
		case screen.Onboarding:
			err = s.onboarding(ctx)
		case screen.Dashboard:
			var quit bool
			quit, err = s.dashboard(ctx)
			if quit {
				fmt.Println("Goodbye!")
				return nil
			}
		case screen.Impact:
			err = s.impact(ctx)
		case screen.WhatIf:
			err = s.whatIf(ctx)
		case screen.LocalActions:
			err = s.localActions()
		case screen.LearnGrow:
			err = s.learnGrow()
		default:
			return fmt.Errorf("unknown screen %q", s.orch.Screen())
		}
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			printError("%v", err)
		}
	}
}

func (s *session) welcome(ctx context.Context) error {
	printHeading("Welcome to EcoQuest!")
	fmt.Println("Your personal climate education companion.")
	if _, err := s.prompt("Press enter to begin"); err != nil {
		return err
	}
	return s.orch.StartOnboarding()
}

func (s *session) onboarding(ctx context.Context) error {
	printHeading("Let's get to know you")

	ageStr, err := s.prompt("How old are you? (15/22/30/40)")
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return fmt.Errorf("invalid age: %w", err)
	}

	interestsStr, err := s.prompt("What interests you? (comma-separated: %s)", strings.Join(profile.Interests, ", "))
	if err != nil {
		return err
	}
	interests := splitList(interestsStr)

	level, err := s.prompt("How much do you know about climate change? (beginner/intermediate/advanced)")
	if err != nil {
		return err
	}

	if loc := s.orch.ResolveLocation(ctx); loc != "" && loc != location.Unavailable {
		fmt.Printf("Detected location: %s\n", loc)
	}

	result, err := s.orch.CompleteOnboarding(ctx, orchestrator.OnboardingInput{
		Age:            age,
		Interests:      interests,
		KnowledgeLevel: strings.ToLower(level),
	})
	if err != nil {
		return err
	}
	printSuccess("%s", result.WelcomeMessage)
	return nil
}

func (s *session) dashboard(ctx context.Context) (bool, error) {
	printHeading("Dashboard")
	if p, ok := s.orch.Profile(); ok {
		fmt.Printf("Level %d · %d points\n", p.Level, p.Points)
	}
	fmt.Println("  1) Calculate my impact")
	fmt.Println("  2) Explore what-if scenarios")
	fmt.Println("  3) Local actions")
	fmt.Println("  4) Learn & grow")
	fmt.Println("  q) Quit")

	choice, err := s.prompt("Choose")
	if err != nil {
		return false, err
	}
	switch choice {
	case "1":
		return false, s.orch.OpenScreen(screen.Impact)
	case "2":
		return false, s.orch.OpenScreen(screen.WhatIf)
	case "3":
		return false, s.orch.OpenScreen(screen.LocalActions)
	case "4":
		return false, s.orch.OpenScreen(screen.LearnGrow)
	case "q", "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown choice %q", choice)
	}
}

func (s *session) impact(ctx context.Context) error {
	printHeading("Calculate your impact")

	habits := profile.Habits{}
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"How do you usually get around? (car/bike/walk/public)", &habits.Transport},
		{"What best describes your diet? (meat/vegetarian/vegan/pescatarian)", &habits.Diet},
		{"How is your energy usage? (low/medium/high)", &habits.EnergyUsage},
		{"How much waste do you produce? (minimal/average/high)", &habits.WasteHabits},
	}
	for _, f := range fields {
		v, err := s.prompt("%s", f.prompt)
		if err != nil {
			return err
		}
		*f.dst = strings.ToLower(v)
	}

	result, err := s.orch.CalculateImpact(ctx, habits)
	if err != nil {
		if backErr := s.orch.Back(); backErr != nil {
			return backErr
		}
		return err
	}

	printStatus("Daily", "%.1f kg CO2", result.DailyCO2)
	printStatus("Weekly", "%.1f kg CO2", result.WeeklyCO2)
	printStatus("Yearly", "%.1f kg CO2", result.YearlyCO2)
	for _, sug := range result.Suggestions {
		fmt.Printf("  • %s\n", sug)
	}
	if result.PositiveImpact != "" {
		fmt.Println(colorize(colorGreen, result.PositiveImpact))
	}
	return s.orch.Back()
}

func (s *session) whatIf(ctx context.Context) error {
	printHeading("What if...")

	scenario, err := s.prompt("Describe a scenario (empty to go back)")
	if err != nil {
		return err
	}
	if scenario == "" {
		return s.orch.Back()
	}

	paragraphs, err := s.orch.ExploreWhatIf(ctx, scenario)
	if err != nil {
		printWarning("The scenario engine is unavailable right now.")
	}
	for _, p := range paragraphs {
		fmt.Println(p)
		fmt.Println()
	}
	return nil
}

func (s *session) localActions() error {
	printHeading("Local actions")

	actions, src := s.orch.LocalActions()
	if src == orchestrator.SourceFallback {
		printWarning("Showing curated suggestions; live recommendations are unavailable.")
	}
	for _, a := range actions {
		fmt.Printf("%s (%s)\n", colorize(colorBold, a.Title), a.Difficulty)
		fmt.Printf("  %s\n", a.Description)
		fmt.Printf("  Impact: %s\n", a.Impact)
	}
	if _, err := s.prompt("Press enter to go back"); err != nil {
		return err
	}
	return s.orch.Back()
}

func (s *session) learnGrow() error {
	printHeading("Learn & grow")

	lessons, src := s.orch.Lessons()
	if src == orchestrator.SourceFallback {
		printWarning("Showing curated lessons; personalized content is unavailable.")
	}
	for i, l := range lessons {
		fmt.Printf("%d. %s (%s, %s)\n", i+1, colorize(colorBold, l.Title), l.Duration, l.Difficulty)
		fmt.Printf("   %s\n", l.Description)
	}
	if _, err := s.prompt("Press enter to go back"); err != nil {
		return err
	}
	return s.orch.Back()
}

func (s *session) prompt(format string, args ...any) (string, error) {
	fmt.Print(colorize(colorCyan, fmt.Sprintf(format, args...)) + " ")
	line, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

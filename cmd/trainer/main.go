package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/blackjacklab/trainer/internal/config"
	"github.com/blackjacklab/trainer/pkg/blackjack"
	"github.com/blackjacklab/trainer/pkg/entities"
	"github.com/blackjacklab/trainer/pkg/repositories/session"
	"github.com/blackjacklab/trainer/pkg/services/training"
	"github.com/blackjacklab/trainer/pkg/strategy"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1B5E20")).
			Padding(0, 1).
			Bold(true)

	dealerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E57373")).Bold(true)
	handStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#81D4FA")).Bold(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#81C784")).Bold(true)
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E57373")).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	messageStyle = lipgloss.NewStyle().Italic(true)
)

type CLI struct {
	Storage string `help:"Storage backend (memory, sqlite, elasticsearch); overrides TRAINER_STORAGE" default:""`
	Decks   int    `help:"Number of decks in the shoe; overrides TRAINER_DECKS" default:"0"`
	H17     bool   `help:"Dealer hits soft 17" default:"false"`
	Verbose bool   `short:"v" help:"Log at debug level"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	if cli.Storage != "" {
		cfg.Storage = cli.Storage
	}
	if cli.Decks > 0 {
		cfg.Rules.NumDecks = cli.Decks
	}
	if cli.H17 {
		cfg.Rules.DealerHitsSoft17 = true
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "trainer",
	})
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	repo, err := buildRepository(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "storage", cfg.Storage, "error", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Failed to close repository", "error", err)
		}
	}()

	svc, err := training.NewService(cfg.Rules, repo, logger)
	if err != nil {
		logger.Fatal("Failed to start session", "error", err)
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack Card-Counting Trainer ♦ ♣ "))
	fmt.Println(subtleStyle.Render(fmt.Sprintf("%d decks | %s | min bet %d | bankroll %d",
		cfg.Rules.NumDecks, dealerRule(cfg.Rules), cfg.Rules.MinBet, cfg.Rules.StartingBankroll)))
	fmt.Println(subtleStyle.Render("commands: bet <n>, hit, stand, double, split, surrender, yes/no, advice, count, stats, history, next, shuffle, quit"))
	fmt.Println()

	runLoop(context.Background(), svc, logger)
	kctx.Exit(0)
}

func buildRepository(cfg *config.Config) (session.Repository, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return session.NewMemoryRepository(), nil
	case config.StorageSQLite:
		return session.NewSQLiteRepository(cfg.SQLitePath)
	case config.StorageElasticsearch:
		base, err := session.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return session.NewElasticsearchRepository(base, &session.ElasticsearchConfig{
			URL:         cfg.ElasticsearchURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			IndexPrefix: "trainer",
		})
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}

func dealerRule(rules blackjack.Rules) string {
	if rules.DealerHitsSoft17 {
		return "dealer hits soft 17"
	}
	return "dealer stands on soft 17"
}

func runLoop(ctx context.Context, svc *training.Service, logger *log.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	render(svc.Snapshot())

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		cmd := fields[0]
		switch cmd {
		case "quit", "q", "exit":
			printStats(svc)
			return

		case "bet", "b":
			if len(fields) < 2 {
				fmt.Println(badStyle.Render("usage: bet <amount>"))
				continue
			}
			amount, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Println(badStyle.Render("bet amount must be a number"))
				continue
			}
			snap, err := svc.PlaceBet(ctx, amount)
			if err != nil {
				printErr(err)
				continue
			}
			render(snap)

		case "yes", "y", "no", "n":
			snap := svc.Snapshot()
			if snap.Phase == blackjack.PhaseInsurance {
				take := cmd == "yes" || cmd == "y"
				snap, grade, err := svc.TakeInsurance(ctx, take)
				if err != nil {
					printErr(err)
					continue
				}
				printGrade(grade, take)
				render(snap)
				continue
			}
			if cmd == "n" { // shorthand for next outside the insurance offer
				nextRound(svc)
				continue
			}
			fmt.Println(badStyle.Render("no insurance offer is open"))

		case "hit", "h", "stand", "s", "double", "d", "split", "p", "surrender", "r":
			action, err := strategy.ParseAction(cmd)
			if err != nil {
				printErr(err)
				continue
			}
			snap, grade, err := svc.Play(ctx, action)
			if err != nil {
				printErr(err)
				continue
			}
			printPlayGrade(grade)
			render(snap)

		case "advice", "a":
			printAdvice(svc)

		case "count", "c":
			snap := svc.Snapshot()
			fmt.Printf("running count %+d | true count %+.1f | %.1f decks remaining\n",
				snap.RunningCount, snap.TrueCount, snap.DecksRemaining)

		case "stats":
			printStats(svc)

		case "history":
			printHistory(ctx, svc)

		case "next":
			nextRound(svc)

		case "shuffle":
			snap, err := svc.ReshuffleNow()
			if err != nil {
				printErr(err)
				continue
			}
			render(snap)

		default:
			fmt.Println(badStyle.Render(fmt.Sprintf("unknown command %q", cmd)))
		}
	}
}

func nextRound(svc *training.Service) {
	snap, err := svc.StartNextRound()
	if err != nil {
		printErr(err)
		return
	}
	render(snap)
}

func printAdvice(svc *training.Service) {
	snap := svc.Snapshot()
	if snap.Phase == blackjack.PhaseInsurance {
		if snap.InsuranceAdvised {
			fmt.Println(goodStyle.Render("advice: take insurance"))
		} else {
			fmt.Println(goodStyle.Render("advice: decline insurance"))
		}
		return
	}
	rec, err := svc.Recommendation()
	if err != nil {
		printErr(err)
		return
	}
	line := fmt.Sprintf("advice: %s", rec.Action)
	if rec.IsDeviation {
		line += fmt.Sprintf(" (deviation: %s)", rec.Reason)
	}
	fmt.Println(goodStyle.Render(line))
}

func printGrade(grade *training.Grade, took bool) {
	verb := "declined"
	if took {
		verb = "took"
	}
	if grade.Correct {
		fmt.Println(goodStyle.Render(fmt.Sprintf("✓ correctly %s insurance (%s)", verb, grade.Reason)))
	} else {
		fmt.Println(badStyle.Render(fmt.Sprintf("✗ %s insurance, but %s", verb, grade.Reason)))
	}
}

func printPlayGrade(grade *training.Grade) {
	if grade == nil {
		return
	}
	if grade.Correct {
		fmt.Println(goodStyle.Render(fmt.Sprintf("✓ %s is correct", grade.Action)))
	} else {
		fmt.Println(badStyle.Render(fmt.Sprintf("✗ played %s, book says %s (%s)",
			grade.Action, grade.Recommended, grade.Reason)))
	}
}

func printStats(svc *training.Service) {
	stats := svc.Statistics()
	fmt.Printf("hands %d | W %d / L %d / P %d | blackjacks %d | net %+d\n",
		stats.HandsPlayed, stats.Wins, stats.Losses, stats.Pushes, stats.Blackjacks, stats.NetResult)
	fmt.Printf("decisions %d | accuracy %.1f%% | win rate %.1f%%\n",
		stats.Decisions, stats.Accuracy(), stats.WinRate())
}

func printHistory(ctx context.Context, svc *training.Service) {
	records, err := svc.History(ctx, 10)
	if err != nil {
		printErr(err)
		return
	}
	if len(records) == 0 {
		fmt.Println(subtleStyle.Render("no rounds recorded yet"))
		return
	}
	for _, record := range records {
		for _, hand := range record.Hands {
			fmt.Printf("%s  %-9s %s vs dealer %s (net %+d)\n",
				record.CompletedAt.Format("15:04:05"), hand.Outcome,
				strings.Join(hand.Cards, " "), strings.Join(record.DealerCards, " "), hand.Net)
		}
	}
}

func printErr(err error) {
	var gameErr *blackjack.GameError
	if errors.As(err, &gameErr) {
		fmt.Println(badStyle.Render(fmt.Sprintf("%s: %s", gameErr.Code, gameErr.Message)))
		return
	}
	fmt.Println(badStyle.Render(err.Error()))
}

func render(snap *blackjack.Snapshot) {
	fmt.Println()
	if len(snap.DealerCards) > 0 {
		fmt.Printf("%s %s\n", dealerStyle.Render("dealer:"), dealerLine(snap))
	}
	for i, hand := range snap.Hands {
		label := "you:"
		if len(snap.Hands) > 1 {
			label = fmt.Sprintf("hand %d:", i+1)
		}
		marker := " "
		if hand.Active {
			marker = "▶"
		}
		fmt.Printf("%s %s %s %s\n", marker, handStyle.Render(label), cardLine(hand.Cards), handTotal(hand))
	}
	fmt.Printf("%s bankroll %d\n", subtleStyle.Render(string(snap.Phase)), snap.Bankroll)
	if snap.Message != "" {
		fmt.Println(messageStyle.Render(snap.Message))
	}
	fmt.Println()
}

func dealerLine(snap *blackjack.Snapshot) string {
	if snap.DealerHoleHidden {
		return fmt.Sprintf("%s ??", snap.DealerCards[0].Short())
	}
	return fmt.Sprintf("%s (%d)", cardLine(snap.DealerCards), snap.DealerTotal)
}

func cardLine(cards []*entities.Card) string {
	parts := make([]string, 0, len(cards))
	for _, card := range cards {
		parts = append(parts, card.Short())
	}
	return strings.Join(parts, " ")
}

func handTotal(hand blackjack.HandView) string {
	total := fmt.Sprintf("(%d)", hand.Total)
	if hand.IsSoft {
		total = fmt.Sprintf("(soft %d)", hand.Total)
	}
	if hand.Status != blackjack.StatusPlaying {
		total += " " + string(hand.Status)
	}
	return total
}

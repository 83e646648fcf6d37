package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"seotda-server/internal/config"
	"seotda-server/internal/jwt"
	"seotda-server/pkg/db"
	"seotda-server/pkg/model"
)

var command = flag.String("c", "player", "specifies the command (player, players, grant, token)")
var name = flag.String("name", "", "display name of the new player")
var playerID = flag.Int64("id", 0, "player id for grant and token")
var amount = flag.Int("amount", 0, "amount to grant, negative to deduct")

func main() {
	flag.Parse()

	cfg := config.Instance()
	if err := db.Load(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("could not connect to the database")
	}

	ctx := context.Background()

	switch *command {
	case "player":
		createPlayer(ctx, cfg.Game.StartingBalance)
	case "players":
		listPlayers(ctx)
	case "grant":
		grant(ctx)
	case "token":
		player, err := model.GetPlayerByID(ctx, *playerID)
		if err != nil {
			logrus.WithError(err).Fatal("could not find player")
		}

		printToken(player)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func createPlayer(ctx context.Context, startingBalance int) {
	displayName := *name
	if displayName == "" {
		var err error
		displayName, err = getInput("Display name")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}
	}

	if displayName == "" {
		_, _ = fmt.Fprintln(os.Stderr, "a display name is required")
		os.Exit(1)
	}

	balance := startingBalance
	if answer, err := getInput(fmt.Sprintf("Starting balance (%d)", startingBalance)); err == nil && answer != "" {
		balance, err = strconv.Atoi(answer)
		if err != nil || balance < 0 {
			logrus.WithField("answer", answer).Fatal("starting balance must be a positive number")
		}
	}

	player, err := model.CreatePlayer(ctx, displayName, balance)
	if err != nil {
		logrus.WithError(err).Fatal("could not create player")
	}

	pterm.Success.Printfln("Created player %d (%s) with a balance of %d", player.ID, player.DisplayName, player.Balance)
	printToken(player)
}

func listPlayers(ctx context.Context) {
	players, err := model.GetPlayers(ctx, 0, 100)
	if err != nil {
		logrus.WithError(err).Fatal("could not get players")
	}

	data := pterm.TableData{{"ID", "Name", "Balance", "Games", "Wins", "Level", "Experience"}}
	for _, p := range players {
		data = append(data, []string{
			strconv.FormatInt(p.ID, 10),
			p.DisplayName,
			strconv.Itoa(p.Balance),
			strconv.Itoa(p.GamesPlayed),
			strconv.Itoa(p.Wins),
			strconv.Itoa(p.Level),
			strconv.Itoa(p.Experience),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		logrus.WithError(err).Fatal("could not render players")
	}
}

func grant(ctx context.Context) {
	if *playerID == 0 || *amount == 0 {
		logrus.Fatal("-id and -amount are required")
	}

	balance, err := (&model.Bank{}).ApplyDelta(ctx, *playerID, *amount, "admin grant")
	if err != nil {
		logrus.WithError(err).Fatal("could not adjust balance")
	}

	pterm.Success.Printfln("Player %d now has a balance of %d", *playerID, balance)
}

func printToken(player *model.Player) {
	if err := jwt.LoadSecret(); err != nil {
		pterm.Warning.Println("no jwt secret is configured, skipping the token")
		return
	}

	token, err := jwt.Sign(player.ID)
	if err != nil {
		logrus.WithError(err).Fatal("could not sign token")
	}

	pterm.Info.Printfln("Token for %s:\n%s", player.DisplayName, token)
}

// getInput only prompts when attached to a terminal
func getInput(question string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(str, "\r\n"), nil
}

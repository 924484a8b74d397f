// Command quizcli runs the coding quiz in a terminal against a QuizBit API
// server, signing in, walking the question sequence, and saving the result.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quizbit/server/internal/client"
	"github.com/quizbit/server/internal/questionbank"
	"github.com/quizbit/server/internal/quiz"
)

func main() {
	apiBase := flag.String("api", "http://localhost:4000", "QuizBit API base URL")
	flag.Parse()

	bank, err := questionbank.NewStaticBank()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading questions:", err)
		os.Exit(1)
	}

	tokens, err := client.NewFileTokenStore("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "opening token store:", err)
		os.Exit(1)
	}
	tokens.Subscribe(func(token string) {
		if token == "" {
			fmt.Println("Signed out.")
		}
	})

	api := client.New(*apiBase, tokens)
	stdin := bufio.NewScanner(os.Stdin)

	if tokens.Token() == "" {
		if err := signIn(stdin, api); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	submitted := make(chan error, 1)
	session := quiz.NewSession(bank, api,
		quiz.WithAdvanceDelay(0),
		quiz.WithOnSubmitted(func(err error) { submitted <- err }),
	)

	runQuiz(stdin, bank, session)

	score := session.Score()
	fmt.Printf("\nYou scored %d/%d (%d%%) — %s\n",
		score.Correct, score.Total, score.Percentage, performanceBand(score.Percentage))

	if err := <-submitted; err != nil {
		fmt.Println("Could not save result:", err)
	} else {
		fmt.Println("Result saved!")
	}

	fmt.Println("\nYour results so far:")
	results, err := api.ListResults(context.Background(), "all")
	if err != nil {
		fmt.Println("Could not load results:", err)
		return
	}
	for _, r := range results {
		fmt.Printf("  %s  %s/%s  %d/%d  (%s)\n",
			r.Title, r.Technology, r.Level, r.Correct, r.TotalQuestions,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func signIn(stdin *bufio.Scanner, api *client.Client) error {
	fmt.Print("No saved session. [l]ogin or [r]egister? ")
	choice := strings.ToLower(readLine(stdin))

	email := prompt(stdin, "Email: ")
	if choice == "r" {
		name := prompt(stdin, "Name: ")
		password := prompt(stdin, "Password: ")
		user, err := api.Register(context.Background(), name, email, password)
		if err != nil {
			return err
		}
		fmt.Println("Welcome,", user.Name)
		return nil
	}

	password := prompt(stdin, "Password: ")
	user, err := api.Login(context.Background(), email, password)
	if err != nil {
		return err
	}
	fmt.Println("Welcome back,", user.Name)
	return nil
}

func runQuiz(stdin *bufio.Scanner, bank questionbank.Bank, session *quiz.Session) {
	techs := bank.Technologies()
	fmt.Println("\nTechnologies:")
	for i, tech := range techs {
		fmt.Printf("  %d) %s\n", i+1, tech)
	}
	tech := techs[pickIndex(stdin, "Pick a technology: ", len(techs))]
	session.SelectSubject(tech)

	levels := bank.Levels(tech)
	fmt.Println("Levels:")
	for i, level := range levels {
		fmt.Printf("  %d) %s\n", i+1, level)
	}
	level := levels[pickIndex(stdin, "Pick a level: ", len(levels))]
	if err := session.SelectLevel(level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	total := session.QuestionCount()
	for {
		q, index, ok := session.CurrentQuestion()
		if !ok {
			break
		}
		fmt.Printf("\nQuestion %d/%d: %s\n", index+1, total, q.Text)
		for i, option := range q.Options {
			fmt.Printf("  %d) %s\n", i+1, option)
		}
		answer := pickIndex(stdin, "Your answer: ", len(q.Options))
		if err := session.Answer(answer); err != nil {
			fmt.Println(err)
		}
	}
}

func performanceBand(percentage int) string {
	switch {
	case percentage >= 90:
		return "Outstanding!"
	case percentage >= 75:
		return "Excellent"
	case percentage >= 60:
		return "Good Job!"
	default:
		return "Keep Practicing"
	}
}

func prompt(stdin *bufio.Scanner, label string) string {
	fmt.Print(label)
	return readLine(stdin)
}

func pickIndex(stdin *bufio.Scanner, label string, count int) int {
	for {
		fmt.Print(label)
		raw := readLine(stdin)
		n, err := strconv.Atoi(raw)
		if err == nil && n >= 1 && n <= count {
			return n - 1
		}
		fmt.Printf("Enter a number between 1 and %d.\n", count)
	}
}

func readLine(stdin *bufio.Scanner) string {
	if !stdin.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(stdin.Text())
}

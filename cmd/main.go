package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/maskwatch/maskwatch-research-cli/internal/notification"
	"github.com/maskwatch/maskwatch-research-cli/internal/ui"
)

func printBanner() {
	figure1 := figure.NewFigure("Maskwatch", "isometric1", true)
	figure2 := figure.NewFigure("CLI", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func initCLI() {
	defer func() {
		if r := recover(); r != nil {
			pc, file, line, ok := runtime.Caller(3)
			var location string
			if ok {
				fn := runtime.FuncForPC(pc)
				location = fmt.Sprintf("%s:%d in %s", file, line, fn.Name())
			} else {
				location = "Unknown location"
			}

			fmt.Printf("\n%sPANIC: %v%s\n", ui.ColorRed, r, ui.ColorReset)
			fmt.Printf("%sLocation: %s%s\n", ui.ColorRed, location, ui.ColorReset)
			fmt.Printf("%sPlease check the input and try again.%s\n", ui.ColorRed, ui.ColorReset)
			fmt.Printf("%sExiting...%s\n", ui.ColorRed, ui.ColorReset)

			stack := debug.Stack()
			errMessage := fmt.Sprintf("Maskwatch CLI panic:\n\n%v\n\nLocation: %s\n\nStack trace:\n%s", r, location, stack)
			if err := notification.SendDiscordErrorNotification(errMessage); err != nil {
				fmt.Printf("%sFailed to send notification: %s%s\n", ui.ColorRed, err.Error(), ui.ColorReset)
			}
		}
	}()

	printBanner()
	ui.ShowMenu()
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			fmt.Println("No .env file found, relying on exported environment variables")
		}
	}

	initCLI()
}

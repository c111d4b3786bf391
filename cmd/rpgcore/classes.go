package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrenfall/rpg-core/internal/catalog"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Print the class roster",
	RunE:  runClasses,
}

func runClasses(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	classes := catalog.NewClassCatalog()
	if err := classes.Validate(); err != nil {
		return fmt.Errorf("class catalog invalid: %w", err)
	}

	fmt.Printf("%-12s %3s %3s %3s %3s %3s %3s %4s  %s\n",
		"CLASS", "STR", "DEX", "INT", "WIS", "CHA", "CON", "HP", "ABILITIES")
	for _, c := range classes.Classes() {
		fmt.Printf("%-12s %3d %3d %3d %3d %3d %3d %4d  %s\n",
			c.ID,
			c.Scores.Strength, c.Scores.Dexterity, c.Scores.Intelligence,
			c.Scores.Wisdom, c.Scores.Charisma, c.Scores.Constitution,
			c.HP(), strings.Join(c.Abilities, ", "))
	}
	fmt.Printf("\n%d classes, median HP %d\n", classes.Count(), classes.MedianHP())
	return nil
}

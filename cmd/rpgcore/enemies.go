package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrenfall/rpg-core/internal/catalog"
)

var enemiesBossesOnly bool

var enemiesCmd = &cobra.Command{
	Use:   "enemies",
	Short: "Print the enemy catalog summary",
	RunE:  runEnemies,
}

func init() {
	enemiesCmd.Flags().BoolVar(&enemiesBossesOnly, "bosses", false, "list only boss templates")
}

func runEnemies(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	enemies := catalog.NewEnemyCatalog()
	regular, bosses := enemies.Count()

	fmt.Printf("%-20s %-22s %4s %-10s %4s %4s %4s %4s\n",
		"ID", "NAME", "TIER", "BEHAVIOR", "HP", "ATK", "DEF", "DEX")
	for _, t := range enemies.Templates() {
		if enemiesBossesOnly && !t.Boss {
			continue
		}
		fmt.Printf("%-20s %-22s %4d %-10s %4d %4d %4d %4d\n",
			t.ID, t.Name, t.Tier, t.Behavior, t.MaxHP, t.Attack, t.Defense, t.Dexterity)
	}
	fmt.Printf("\n%d regular templates, %d bosses\n", regular, bosses)
	return nil
}

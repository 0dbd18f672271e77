package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tailorloom/tailorloom/internal/config"
	"github.com/tailorloom/tailorloom/internal/industry"
)

func newIndustriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "industries [name]",
		Short: "List industry profiles, or show one in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.New(cwd)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				profile, err := industry.Select(cfg.IndustriesDir(), args[0])
				if err != nil {
					return err
				}
				printProfile(profile)
				return nil
			}

			names, err := industry.Names(cfg.IndustriesDir())
			if err != nil {
				return err
			}
			active := cfg.Industry()
			for _, name := range names {
				profile, err := industry.Select(cfg.IndustriesDir(), name)
				if err != nil {
					return err
				}
				marker := " "
				if name == active {
					marker = "*"
				}
				fmt.Printf("%s %-16s %s\n", marker, name, profile.DisplayName)
				if profile.Description != "" {
					fmt.Printf("  %s\n", profile.Description)
				}
			}
			fmt.Println("\nDrop custom profile YAML files into", cfg.IndustriesDir())
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "use <name>",
		Short: "Set the default industry profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.New(cwd)
			if err != nil {
				return err
			}
			if _, err := industry.Select(cfg.IndustriesDir(), args[0]); err != nil {
				return err
			}
			if err := cfg.SetIndustry(args[0]); err != nil {
				return err
			}
			fmt.Printf("Default industry is now %s\n", args[0])
			return nil
		},
	})
	return cmd
}

func printProfile(p industry.Profile) {
	fmt.Printf("%s (%s)\n", p.DisplayName, p.Industry)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	if len(p.PrimaryRoles) > 0 {
		fmt.Printf("\nPrimary roles: %s\n", strings.Join(p.PrimaryRoles, ", "))
	}
	if len(p.PriorityKeywords) > 0 {
		fmt.Printf("Priority keywords: %s\n", strings.Join(p.PriorityKeywords, ", "))
	}
	if len(p.SkillCategories) > 0 {
		fmt.Println("\nSkill categories:")
		names := make([]string, 0, len(p.SkillCategories))
		for name := range p.SkillCategories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cat := p.SkillCategories[name]
			fmt.Printf("  %-20s priority %-6s %d skills\n", name, cat.Priority, len(cat.Skills))
		}
	}
	if len(p.Acronyms) > 0 {
		fmt.Printf("\nAcronyms known: %d\n", len(p.Acronyms))
	}
}

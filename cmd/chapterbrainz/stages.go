package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/chapterbrainz/internal/output"
	"github.com/jackzampolin/chapterbrainz/internal/pipeline"
)

// stageInfo describes one pipeline stage for the stages command.
type stageInfo struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty" yaml:"dependents,omitempty"`
}

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List pipeline stages in run order",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		workTitles, err := mgr.Get().ResolvedWorkTitles()
		if err != nil {
			return err
		}

		p, err := pipeline.New(pipeline.Options{WorkTitles: workTitles})
		if err != nil {
			return err
		}
		ordered, err := p.Registry().GetOrdered()
		if err != nil {
			return err
		}

		out := make([]stageInfo, 0, len(ordered))
		for _, s := range ordered {
			info := stageInfo{Name: s.Name(), Description: s.Description()}
			for _, dep := range p.Registry().DependenciesOf(s.Name()) {
				info.Dependencies = append(info.Dependencies, dep.Name())
			}
			for _, dep := range p.Registry().DependentsOf(s.Name()) {
				info.Dependents = append(info.Dependents, dep.Name())
			}
			out = append(out, info)
		}
		return output.Write(cmd.OutOrStdout(), out)
	},
}

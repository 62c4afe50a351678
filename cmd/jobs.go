/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yogesh1825/CareerConnect-Job-Portal/client"
	"github.com/yogesh1825/CareerConnect-Job-Portal/client/state"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

var jobsOpts struct {
	apiURL     string
	keyword    string
	location   string
	industry   string
	email      string
	password   string
	role       string
	saved      bool
	toggleSave string
}

// jobsCmd represents the jobs command
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse jobs from a running CareerConnect server",
	Long: `Lists public jobs the way the web app does, with the same search and
filters. Logging in enables saved jobs. Usage:

	careerconnect jobs --keyword backend --location Pune
	careerconnect jobs --email a@b.c --password secret --role student --toggle-save <jobID>
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		api, err := client.New(jobsOpts.apiURL)
		if err != nil {
			return err
		}
		store := state.NewStore()
		loader := state.NewLoader(api, store, state.LogNotifier{})

		if jobsOpts.email != "" {
			if err := loader.Login(ctx, jobsOpts.email, jobsOpts.password, types.Role(jobsOpts.role)); err != nil {
				return err
			}
			if err := loader.LoadSavedJobs(ctx); err != nil {
				return err
			}
		}

		if jobsOpts.toggleSave != "" {
			if store.State().Auth.User == nil {
				return errors.New("--toggle-save requires --email, --password and --role")
			}
			job, err := api.Job(ctx, types.ID(jobsOpts.toggleSave))
			if err != nil {
				return errors.New(state.ErrorMessage(err, "Job not found"))
			}
			if err := loader.ToggleSavedJob(ctx, job); err != nil {
				return err
			}
		}

		if jobsOpts.saved {
			printJobs(out, store.State().Job.SavedJobs, store.State().Job)
			return nil
		}

		if err := loader.Search(ctx, jobsOpts.keyword); err != nil {
			fmt.Fprintln(os.Stderr, store.State().Job.AllJobsError)
		}
		criteria := state.FilterCriteria{Location: jobsOpts.location, Industry: jobsOpts.industry}
		store.Dispatch(state.SetFilterCriteria{Criteria: criteria})

		current := store.State().Job
		jobs := state.FilterJobs(current.AllJobs, current.SearchedQuery, current.Filter)
		if len(jobs) == 0 {
			fmt.Fprintln(out, state.EmptyJobsMessage(current.Filter))
			return nil
		}
		printJobs(out, jobs, current)
		return nil
	},
}

func printJobs(out io.Writer, jobs []types.Job, current state.JobState) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tSALARY\tTYPE\tSAVED")
	for _, job := range jobs {
		company := "-"
		if job.Company != nil {
			company = job.Company.Name
		}
		saved := ""
		if current.IsSaved(job.ID) {
			saved = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g %s\t%s\t%s\n",
			job.ID, job.Title, company, job.Location, job.Salary, job.SalaryType, job.JobType, saved)
	}
	_ = tw.Flush()
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	flags := jobsCmd.Flags()
	flags.StringVar(&jobsOpts.apiURL, "api", "http://localhost:8000", "CareerConnect server base URL")
	flags.StringVarP(&jobsOpts.keyword, "keyword", "k", "", "search title, description and location")
	flags.StringVar(&jobsOpts.location, "location", "", "only jobs in this exact location")
	flags.StringVar(&jobsOpts.industry, "industry", "", "only jobs whose title mentions this industry")
	flags.StringVar(&jobsOpts.email, "email", "", "log in as this user")
	flags.StringVar(&jobsOpts.password, "password", "", "password for --email")
	flags.StringVar(&jobsOpts.role, "role", string(types.RoleStudent), "role for --email")
	flags.BoolVar(&jobsOpts.saved, "saved", false, "list saved jobs instead (requires login)")
	flags.StringVar(&jobsOpts.toggleSave, "toggle-save", "", "save or unsave this job id (requires login)")
}

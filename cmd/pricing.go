package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/browser"
	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
	"github.com/ai-interviewer/interviewer-cli/internal/views"
)

var pricingNoBrowser bool

var pricingCmd = &cobra.Command{
	Use:   "pricing [plan]",
	Short: "List plans and buy interview tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		var nav browser.Navigator = browser.NewSystem(s.out)
		if pricingNoBrowser {
			nav = browser.Printer{Out: s.out}
		}

		plan := ""
		if len(args) == 1 {
			plan = args[0]
		}
		return runPricing(cmd.Context(), s, nav, plan)
	}),
}

func init() {
	rootCmd.AddCommand(pricingCmd)

	pricingCmd.Flags().BoolVar(&pricingNoBrowser, "no-browser", false, "print the checkout link instead of opening it")
}

func runPricing(ctx context.Context, s *session, nav browser.Navigator, planID string) error {
	if planID == "" {
		views.RenderPlans(s.out, interviewer.Plans)

		if s.prompt == nil {
			return nil
		}

		items := make([]string, 0, len(interviewer.Plans))
		for _, p := range interviewer.Plans {
			items = append(items, fmt.Sprintf("%s (%s)", p.Name, p.Price()))
		}

		idx, err := s.prompt.Select("Choose a plan", items)
		if err != nil {
			return err
		}
		planID = interviewer.Plans[idx].ID
	}

	return purchase(ctx, s.client, nav, s.out, s.logger, planID)
}

// purchase starts a checkout for the plan and sends the user to the returned
// checkout page. The free plan needs no checkout.
func purchase(ctx context.Context, client *interviewer.Client, nav browser.Navigator, out io.Writer, logger *zap.Logger, planID string) error {
	plan := interviewer.FindPlan(planID)
	if plan == nil {
		return fmt.Errorf("unknown plan %q", planID)
	}

	if plan.ID == interviewer.FreePlanID {
		fmt.Fprintln(out, "The free plan needs no purchase. Create an interview to use it.")
		return nil
	}

	resp, err := client.CreateCheckout(ctx, plan.ID)
	if err != nil {
		return err
	}

	logger.Info("checkout created", zap.String("plan", plan.ID))

	return nav.Open(resp.CheckoutURL)
}

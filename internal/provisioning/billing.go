package provisioning

// linkBilling links the operator-supplied billing account. Best effort:
// failure warns and the run continues, since several of the migration
// services enable fine without billing.
type linkBilling struct{}

func (linkBilling) Name() string { return "link-billing" }

func (linkBilling) Run(c *Context) StepResult {
	billingID := c.Request.BillingAccountID
	if billingID == "" {
		c.Out.Info("no billing account supplied, skipping")
		return Successf("skipped (no billing account supplied)")
	}

	if err := c.Cloud.LinkBilling(c, c.State.Project.ID, billingID); err != nil {
		c.Out.Warn("billing link failed (continuing): %v", err)
		c.Out.Info("link it later in the console or with: gcloud billing projects link %s --billing-account %s",
			c.State.Project.ID, billingID)
		return Successf("failed, continuing without billing (%s)", billingID)
	}

	c.State.BillingLinked = true
	c.Out.Success("billing account %s linked", billingID)
	return Success()
}

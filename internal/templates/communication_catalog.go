package templates

func communicationCatalog() []CommunicationTemplate {
	return []CommunicationTemplate{
		{
			ID:       "policy-renewal-email",
			Name:     "Policy Renewal Reminder",
			Type:     ChannelEmail,
			Category: CategoryRenewal,
			Subject:  "Your {policyType} Policy Renewal - Action Required",
			Content: `Dear {customerName},

Your {policyType} policy (#{policyNumber}) is set to expire on {expirationDate}.

To ensure continuous coverage, please review and renew your policy by {renewalDeadline}.

Current Premium: ${premium}
Policy Details: {policyDetails}

If you have any questions or would like to discuss your coverage options, please don't hesitate to contact us.

Best regards,
{agentName}
{companyName}`,
			Variables: []string{
				"customerName",
				"policyType",
				"policyNumber",
				"expirationDate",
				"renewalDeadline",
				"premium",
				"policyDetails",
				"agentName",
				"companyName",
			},
		},
		{
			ID:       "welcome-new-customer",
			Name:     "Welcome New Customer",
			Type:     ChannelEmail,
			Category: CategoryWelcome,
			Subject:  "Welcome to {companyName} - Your Policy is Active",
			Content: `Dear {customerName},

Welcome to {companyName}! We're excited to have you as our valued customer.

Your {policyType} policy is now active:
- Policy Number: {policyNumber}
- Coverage Start Date: {startDate}
- Annual Premium: ${premium}

Important documents and policy details are available in your customer portal. If you need assistance or have questions, please contact us at any time.

Thank you for choosing {companyName} for your insurance needs.

Best regards,
{agentName}`,
			Variables: []string{
				"customerName",
				"companyName",
				"policyType",
				"policyNumber",
				"startDate",
				"premium",
				"agentName",
			},
		},
		{
			ID:       "payment-reminder-sms",
			Name:     "Payment Reminder SMS",
			Type:     ChannelSMS,
			Category: CategoryPayment,
			Subject:  "Payment Reminder",
			Content:  "Hi {customerName}, your {policyType} premium of ${amount} is due on {dueDate}. Pay online or call us at {phoneNumber}. - {companyName}",
			Variables: []string{
				"customerName",
				"policyType",
				"amount",
				"dueDate",
				"phoneNumber",
				"companyName",
			},
		},
		{
			ID:       "claim-status-update",
			Name:     "Claim Status Update",
			Type:     ChannelEmail,
			Category: CategoryClaim,
			Subject:  "Update on Your Insurance Claim #{claimNumber}",
			Content: `Dear {customerName},

We wanted to update you on the status of your insurance claim.

Claim Number: {claimNumber}
Current Status: {claimStatus}
Last Updated: {updateDate}

{statusDetails}

If you have any questions about your claim, please contact our claims department at {claimsPhone} or reply to this email.

Best regards,
Claims Department
{companyName}`,
			Variables: []string{
				"customerName",
				"claimNumber",
				"claimStatus",
				"updateDate",
				"statusDetails",
				"claimsPhone",
				"companyName",
			},
		},
		{
			ID:       "follow-up-call",
			Name:     "Follow-up Call Script",
			Type:     ChannelPhone,
			Category: CategoryFollowUp,
			Subject:  "Customer Follow-up Call",
			Content: `Hello {customerName},

This is {agentName} from {companyName}. I'm calling to follow up on your recent {interactionType}.

Key points to discuss:
- {discussionPoint1}
- {discussionPoint2}
- {discussionPoint3}

Questions to ask:
- Are you satisfied with your current coverage?
- Do you have any questions about your policy?
- Is there anything else we can help you with?

Next steps: {nextSteps}`,
			Variables: []string{
				"customerName",
				"agentName",
				"companyName",
				"interactionType",
				"discussionPoint1",
				"discussionPoint2",
				"discussionPoint3",
				"nextSteps",
			},
		},
	}
}

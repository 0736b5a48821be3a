package main

import (
	"fmt"
	"net/mail"

	"github.com/spf13/cobra"

	"github.com/lattiq/mailcloud"
)

func (a *app) sendCommand() *cobra.Command {
	var (
		to, cc, bcc, attachments []string
		from, replyTo            string
		subject, text, html      string
		charset, envFrom         string
		subDomain                string
		substitutions, headers   map[string]string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a transaction email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(func(client *mailcloud.Client) error {
				email := client.TransactionEmail().
					SetSubject(subject).
					SetText(text).
					SetHTML(html).
					SetEnvFrom(envFrom)

				for _, raw := range to {
					addr, err := mail.ParseAddress(raw)
					if err != nil {
						return fmt.Errorf("--to %q: %w", raw, err)
					}
					email.AddTo(addr.Address, addr.Name, substitutions)
				}
				if from != "" {
					addr, err := mail.ParseAddress(from)
					if err != nil {
						return fmt.Errorf("--from %q: %w", from, err)
					}
					email.SetFrom(addr.Address, addr.Name)
				}
				if replyTo != "" {
					addr, err := mail.ParseAddress(replyTo)
					if err != nil {
						return fmt.Errorf("--reply-to %q: %w", replyTo, err)
					}
					email.SetReplyTo(addr.Address, addr.Name)
				}
				for _, addr := range cc {
					email.AddCC(addr)
				}
				for _, addr := range bcc {
					email.AddBCC(addr)
				}
				for name, value := range headers {
					email.SetHeader(name, value)
				}
				for _, path := range attachments {
					email.AddAttachment(path)
				}
				if charset != "" {
					email.SetCharset(charset)
				}
				if subDomain != "" {
					email.SetSubDomain(subDomain)
				}

				if err := email.Send(cmd.Context()); err != nil {
					return err
				}
				return writeJSONLines(cmd.OutOrStdout(), []map[string]string{{"id": email.ID}})
			})
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&to, "to", nil, `recipient, "addr" or "Name <addr>" (repeatable)`)
	f.StringVar(&from, "from", "", `sender, "addr" or "Name <addr>"`)
	f.StringVar(&replyTo, "reply-to", "", "reply-to address")
	f.StringArrayVar(&cc, "cc", nil, "cc address (repeatable)")
	f.StringArrayVar(&bcc, "bcc", nil, "bcc address (repeatable)")
	f.StringVar(&subject, "subject", "", "subject")
	f.StringVar(&text, "text", "", "plain text body")
	f.StringVar(&html, "html", "", "HTML body")
	f.StringVar(&charset, "charset", "", "body charset (default UTF-8)")
	f.StringVar(&envFrom, "envfrom", "", "envelope sender")
	f.StringToStringVar(&substitutions, "substitution", nil, "per-recipient substitution key=value, applied to every --to")
	f.StringToStringVar(&headers, "header", nil, "extra header name=value")
	f.StringArrayVar(&attachments, "attach", nil, "file to attach (repeatable)")
	f.StringVar(&subDomain, "email-sub-domain", "", "sub-domain for this email only")
	return cmd
}

func (a *app) deliveriesCommand() *cobra.Command {
	var (
		params       mailcloud.DeliveryListParams
		messageID    string
		hour, minute int
	)

	cmd := &cobra.Command{
		Use:   "deliveries",
		Short: "List the delivery log of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("hour") {
				params.Hour = mailcloud.Int(hour)
			}
			if cmd.Flags().Changed("minute") {
				params.Minute = mailcloud.Int(minute)
			}
			return a.withClient(func(client *mailcloud.Client) error {
				var (
					records []*mailcloud.Delivery
					err     error
				)
				if messageID != "" {
					records, err = client.DeliveriesByMessageID(cmd.Context(), params, messageID)
				} else {
					records, err = client.Deliveries(cmd.Context(), params)
				}
				if err != nil {
					return err
				}
				return writeJSONLines(cmd.OutOrStdout(), records)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.ServerComposition, "server-composition", "", "server composition name")
	f.StringVar(&params.Date, "date", "", "day to list, yyyy-mm-dd")
	f.StringVar(&params.From, "from", "", "sender filter")
	f.StringVar(&params.To, "to", "", "recipient filter")
	f.StringVar(&params.Status, "status", "", "status filter")
	f.StringVar(&messageID, "message-id", "", "exact api_data match")
	f.IntVar(&hour, "hour", 0, "hour filter")
	f.IntVar(&minute, "minute", 0, "minute filter")
	f.IntVar(&params.P, "page", 0, "page number")
	f.IntVar(&params.R, "rows", 0, "rows per page")
	return cmd
}

func (a *app) bouncesCommand() *cobra.Command {
	var params mailcloud.BounceListParams

	cmd := &cobra.Command{
		Use:   "bounces",
		Short: "List bounced messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(func(client *mailcloud.Client) error {
				records, err := client.Bounces(cmd.Context(), params)
				if err != nil {
					return err
				}
				return writeJSONLines(cmd.OutOrStdout(), records)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.ServerComposition, "server-composition", "", "server composition name")
	f.StringVar(&params.StartDate, "start-date", "", "first day, yyyy-mm-dd")
	f.StringVar(&params.EndDate, "end-date", "", "last day, yyyy-mm-dd")
	f.StringVar(&params.Date, "date", "", "single day, yyyy-mm-dd")
	f.StringVar(&params.From, "from", "", "sender filter")
	f.StringVar(&params.To, "to", "", "recipient filter")
	f.StringVar(&params.Status, "status", "", "status filter")
	f.IntVar(&params.P, "page", 0, "page number")
	f.IntVar(&params.R, "rows", 0, "rows per page")
	return cmd
}

func (a *app) statisticsCommand() *cobra.Command {
	var params mailcloud.StatisticListParams

	cmd := &cobra.Command{
		Use:   "statistics",
		Short: "List daily sending statistics of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(func(client *mailcloud.Client) error {
				records, err := client.Statistics(cmd.Context(), params)
				if err != nil {
					return err
				}
				return writeJSONLines(cmd.OutOrStdout(), records)
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Year, "year", 0, "year, e.g. 2024")
	f.IntVar(&params.Month, "month", 0, "month, 1-12")
	f.StringVar(&params.ServerComposition, "server-composition", "", "server composition name")
	f.BoolVar(&params.Total, "total", false, "return the monthly total only")
	return cmd
}

func (a *app) auditlogsCommand() *cobra.Command {
	var (
		params   mailcloud.AuditlogListParams
		download bool
		out      string
	)

	cmd := &cobra.Command{
		Use:   "auditlogs",
		Short: "List or download login and operation logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(func(client *mailcloud.Client) error {
				if download {
					data, err := client.AuditlogsDownload(cmd.Context(), mailcloud.AuditlogDownloadParams{
						Type:      params.Type,
						Account:   params.Account,
						StartDate: params.StartDate,
						EndDate:   params.EndDate,
					})
					if err != nil {
						return err
					}
					return writeDownload(cmd.OutOrStdout(), out, data)
				}

				records, err := client.Auditlogs(cmd.Context(), params)
				if err != nil {
					return err
				}
				return writeJSONLines(cmd.OutOrStdout(), records)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Type, "type", "", `"login" or "operation"`)
	f.StringVar(&params.Account, "account", "", "account filter")
	f.StringVar(&params.StartDate, "start-date", "", "first day, yyyy-mm-dd")
	f.StringVar(&params.EndDate, "end-date", "", "last day, yyyy-mm-dd")
	f.IntVar(&params.P, "page", 0, "page number")
	f.IntVar(&params.R, "rows", 0, "rows per page")
	f.BoolVar(&download, "download", false, "download the log archive instead of listing")
	f.StringVar(&out, "out", "auditlogs.zip", "download destination")
	return cmd
}

func (a *app) unsubscribesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unsubscribes",
		Short: "Download or cancel unsubscribe entries",
	}
	cmd.AddCommand(a.unsubscribesDownloadCommand(), a.unsubscribesCancelCommand())
	return cmd
}

func (a *app) unsubscribesDownloadCommand() *cobra.Command {
	var (
		params mailcloud.UnsubscribeDownloadParams
		out    string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the unsubscribe list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(func(client *mailcloud.Client) error {
				data, err := client.UnsubscribesDownload(cmd.Context(), params)
				if err != nil {
					return err
				}
				return writeDownload(cmd.OutOrStdout(), out, data)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.ServerComposition, "server-composition", "", "server composition name")
	f.StringVar(&params.Email, "email", "", "address filter")
	f.StringVar(&params.StartDate, "start-date", "", "first day, yyyy-mm-dd")
	f.StringVar(&params.EndDate, "end-date", "", "last day, yyyy-mm-dd")
	f.StringVar(&params.FilterName, "filter-name", "", "filter name")
	f.StringVar(&out, "out", "unsubscribes.zip", "download destination")
	return cmd
}

func (a *app) unsubscribesCancelCommand() *cobra.Command {
	var (
		params mailcloud.UnsubscribeCancelParams
		emails []string
	)

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Remove addresses from the unsubscribe list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(emails) == 1 {
				params.Email = emails[0]
			} else {
				params.Emails = emails
			}
			return a.withClient(func(client *mailcloud.Client) error {
				result, err := client.UnsubscribesCancel(cmd.Context(), params)
				if err != nil {
					return err
				}
				return writeJSONLines(cmd.OutOrStdout(), []map[string]any{result})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.ServerComposition, "server-composition", "", "server composition name")
	f.StringArrayVar(&emails, "email", nil, "address to cancel (repeatable)")
	f.StringVar(&params.FilterName, "filter-name", "", "filter name")
	return cmd
}

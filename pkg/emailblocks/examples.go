package emailblocks

import "time"

// StarterDocument returns a complete welcome-email Block Document exercising
// every block variant. The editor uses it as the blank-slate template before
// the first AI generation completes.
func StarterDocument() *EmailDocument {
	return &EmailDocument{
		Subject:   "Welcome to {{ company_name }}",
		Preheader: "Thanks for signing up — here is what to expect.",
		GlobalStyles: GlobalStyles{
			FontFamily:               defaultFontFamily,
			BackgroundColor:          defaultBackgroundColor,
			ContainerWidth:           defaultContainerWidth,
			ContainerBackgroundColor: defaultContainerColor,
		},
		Metadata: Metadata{
			Version:   FormatVersion,
			CreatedAt: time.Now().UTC(),
		},
		Blocks: []Block{
			{
				ID:        "starter-header",
				BlockType: BlockTypeHeader,
				OrderID:   1,
				Content: HeaderContent{
					ImageURL:   "https://placehold.co/200x50?text=Your+Logo",
					ImageAlt:   "Logo",
					ImageWidth: "200",
				},
			},
			{
				ID:        "starter-hero",
				BlockType: BlockTypeHero,
				OrderID:   2,
				Styles:    StyleOptions{FontSize: Size2XL},
				Content: HeroContent{
					Headline:    "Welcome aboard!",
					Subheadline: "We are glad to have you with us.",
				},
			},
			{
				ID:        "starter-text",
				BlockType: BlockTypeText,
				OrderID:   3,
				Content: TextContent{
					Text:     "Your account is ready. Visit your dashboard to get started, or reply to this email if you have any questions.",
					LinkText: "Visit your dashboard",
					LinkURL:  "https://example.com/dashboard",
				},
			},
			{
				ID:        "starter-image",
				BlockType: BlockTypeImage,
				OrderID:   4,
				Content: ImageContent{
					URL:   "https://placehold.co/560x240?text=Product+Screenshot",
					Alt:   "Product screenshot",
					Width: "560",
				},
			},
			{
				ID:        "starter-features",
				BlockType: BlockTypeFeatures,
				OrderID:   5,
				Content: FeaturesContent{
					Title:  "What you can do",
					Layout: FeaturesLayoutList,
					Features: []Feature{
						{Icon: "🚀", Title: "Launch campaigns", Description: "Design and send in minutes."},
						{Icon: "📊", Title: "Track results", Description: "Opens, clicks and conversions at a glance."},
						{Icon: "🤝", Title: "Grow your audience", Description: "Signup forms and integrations included."},
					},
				},
			},
			{
				ID:        "starter-button",
				BlockType: BlockTypeButton,
				OrderID:   6,
				Content: ButtonContent{
					Text:        "Get started",
					URL:         "https://example.com/start",
					ButtonStyle: ButtonStylePrimary,
				},
			},
			{
				ID:        "starter-divider",
				BlockType: BlockTypeDivider,
				OrderID:   7,
				Content:   DividerContent{DividerType: DividerTypeLine, Thickness: 1},
			},
			{
				ID:        "starter-footer",
				BlockType: BlockTypeFooter,
				OrderID:   8,
				Content: FooterContent{
					CompanyName:       "Acme Inc.",
					Address:           "123 Main Street\nSpringfield, USA",
					UnsubscribeText:   "Unsubscribe",
					UnsubscribeURL:    "https://example.com/unsubscribe",
					PrivacyPolicyText: "Privacy Policy",
					PrivacyPolicyURL:  "https://example.com/privacy",
					SocialLinks: []SocialLink{
						{Platform: SocialPlatformTwitter, URL: "https://twitter.com/acme"},
						{Platform: SocialPlatformLinkedIn, URL: "https://linkedin.com/company/acme"},
					},
				},
			},
		},
	}
}

package analysis

import arch "archlens/internal/types/architecture"

var frameworkContexts = map[arch.Framework]string{
	arch.FrameworkTOGAF: "You are an enterprise architect applying TOGAF 9.2. Structure the analysis along the " +
		"Architecture Development Method: Architecture Vision (Phase A), Business Architecture (B), " +
		"Information Systems Architectures (C, data and application) and Technology Architecture (D). " +
		"Use building blocks, capabilities and stakeholder concerns as the core vocabulary.",
	arch.FrameworkZachman: "You are an enterprise architect applying the Zachman Framework. Classify findings by the " +
		"interrogatives What, How, Where, Who, When and Why across the Planner, Owner, Designer and Builder " +
		"perspectives, and map them onto business, application, data and technology layers.",
	arch.FrameworkISO42001: "You are an AI governance architect applying ISO/IEC 42001. Emphasise the AI management " +
		"system: AI policy, risk and impact assessment, data quality for AI, lifecycle controls, transparency " +
		"and human oversight, while still describing business, application, data and technology layers.",
	arch.FrameworkCustom: "You are an enterprise architect applying the organisation's own architecture principles. " +
		"Describe business capabilities, applications and services, data entities and technology platforms " +
		"in plain terms and highlight transformation opportunities.",
}

var fallbackAnswers = map[arch.Framework]string{
	arch.FrameworkTOGAF: "Based on TOGAF ADM principles, I recommend focusing on Phase A (Architecture Vision) to " +
		"establish clear stakeholder buy-in. The current analysis suggests strong alignment with business " +
		"architecture layers, but we should validate the information systems architecture against your " +
		"enterprise continuum.",
	arch.FrameworkZachman: "From a Zachman Framework perspective, this maps well to the 'What' and 'How' dimensions " +
		"at the Business Model level. Consider expanding the analysis to include the 'Where' and 'When' " +
		"perspectives to ensure comprehensive coverage of your enterprise architecture.",
	arch.FrameworkISO42001: "Regarding ISO 42001 compliance, the current approach demonstrates good AI governance " +
		"practices. However, I'd recommend strengthening the risk management framework and ensuring proper " +
		"documentation of AI system lifecycle management processes.",
	arch.FrameworkCustom: "Based on your custom framework, this aligns well with your defined architecture " +
		"principles. The capability mapping shows strong maturity in core business functions, with " +
		"opportunities for enhancement in digital transformation areas.",
}

// FrameworkContext returns the priming text for fw. Unknown frameworks get the TOGAF context.
func FrameworkContext(fw arch.Framework) string {
	if s, ok := frameworkContexts[fw]; ok {
		return s
	}
	return frameworkContexts[arch.FrameworkTOGAF]
}

// FallbackAnswer is the fixed reply used when a question cannot be answered by the model.
func FallbackAnswer(fw arch.Framework) string {
	if s, ok := fallbackAnswers[fw]; ok {
		return s
	}
	return fallbackAnswers[arch.FrameworkTOGAF]
}

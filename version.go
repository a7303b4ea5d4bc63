package amigo

// Version is the published SDK version.
// 0.3.0: Add EventStream.Collect and InteractionResult for aggregated interactions.
// 0.2.0: Breaking - resource clients moved onto Client (Organization, Services,
// Conversations, Users, Roles); ConfigFromEnv reads AMIGO_* variables.
const Version = "0.3.0"

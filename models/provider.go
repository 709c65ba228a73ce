package models

import "github.com/goliatone/go-digitalize/model"

var providerActivitySchema = model.Schema{
	"provider": {Kind: model.KindModel, Model: TypeProviderIdentifier},
	"type":     {Kind: model.KindString},
	"date":     {Kind: model.KindDateTime},
	"payload":  {Kind: model.KindAny},
	"user":     {Kind: model.KindModel, Model: TypeProviderUser},
}

// ProviderActivity describes an event emitted by an external system: the
// provider identity, the acting user, the event type and a free-form payload.
type ProviderActivity struct {
	model.Record
	model.NopHooks
}

func NewProviderActivity(data map[string]any, opts ...model.Option) (*ProviderActivity, error) {
	activity := &ProviderActivity{}
	options := append([]model.Option{
		model.WithRegistry(registry),
		model.WithHooks(activity),
	}, opts...)
	activity.Init(providerActivitySchema, options...)
	if err := activity.Hydrate(data); err != nil {
		return nil, err
	}
	return activity, nil
}

func (a *ProviderActivity) Type() string { return a.String("type") }
func (a *ProviderActivity) Date() string { return a.String("date") }

func (a *ProviderActivity) Provider() *ProviderIdentifier {
	identifier, _ := a.Nested("provider").(*ProviderIdentifier)
	return identifier
}

func (a *ProviderActivity) User() *ProviderUser {
	user, _ := a.Nested("user").(*ProviderUser)
	return user
}

var providerIdentifierSchema = model.Schema{
	"type":       {Kind: model.KindString},
	"identifier": {Kind: model.KindString},
}

// ProviderIdentifier is the type+identifier pair naming a provider.
type ProviderIdentifier struct {
	model.Record
	model.NopHooks
}

func NewProviderIdentifier(data map[string]any, opts ...model.Option) (*ProviderIdentifier, error) {
	identifier := &ProviderIdentifier{}
	options := append([]model.Option{
		model.WithRegistry(registry),
		model.WithHooks(identifier),
	}, opts...)
	identifier.Init(providerIdentifierSchema, options...)
	if err := identifier.Hydrate(data); err != nil {
		return nil, err
	}
	return identifier, nil
}

func (i *ProviderIdentifier) Type() string       { return i.String("type") }
func (i *ProviderIdentifier) Identifier() string { return i.String("identifier") }

var providerUserSchema = model.Schema{
	"id":   {Kind: model.KindString},
	"name": {Kind: model.KindString},
}

// ProviderUser is the acting user behind a provider activity, when known.
type ProviderUser struct {
	model.Record
	model.NopHooks
}

func NewProviderUser(data map[string]any, opts ...model.Option) (*ProviderUser, error) {
	user := &ProviderUser{}
	options := append([]model.Option{
		model.WithRegistry(registry),
		model.WithHooks(user),
	}, opts...)
	user.Init(providerUserSchema, options...)
	if err := user.Hydrate(data); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *ProviderUser) ID() string   { return u.String("id") }
func (u *ProviderUser) Name() string { return u.String("name") }

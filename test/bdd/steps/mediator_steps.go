package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/hubertnosek100/hmediator/internal/adapters/persistence"
	"github.com/hubertnosek100/hmediator/internal/application/mediator"
	"github.com/hubertnosek100/hmediator/internal/application/ping"
	"github.com/hubertnosek100/hmediator/internal/application/users"
	"github.com/hubertnosek100/hmediator/internal/domain/user"
	"github.com/hubertnosek100/hmediator/test/helpers"
)

// alternateGetUserHandler serves users.GetUserQuery from outside the users package
type alternateGetUserHandler struct{}

func (alternateGetUserHandler) Handle(ctx context.Context, q users.GetUserQuery) (*user.User, error) {
	return &user.User{ID: q.ID, Name: "alternate"}, nil
}

type mediatorContext struct {
	scope     mediator.Scope
	registry  *mediator.Registry
	mediator  *mediator.Mediator
	locator   *helpers.MockLocator
	memStore  *helpers.MockUserStore
	store     user.Store
	altBuilds int

	err         error
	queryResult string
	userResult  *user.User
	listResult  []*user.User
}

func (mc *mediatorContext) reset() {
	mc.scope = mediator.ScopeRequestPackage
	mc.registry = nil
	mc.mediator = nil
	mc.locator = helpers.NewMockLocator()
	mc.memStore = nil
	mc.store = nil
	mc.altBuilds = 0
	mc.err = nil
	mc.queryResult = ""
	mc.userResult = nil
	mc.listResult = nil
}

// Setup Steps

func (mc *mediatorContext) theHandlerScopeIs(scope string) error {
	s, err := mediator.ParseScope(scope)
	if err != nil {
		return err
	}
	mc.scope = s
	return nil
}

func (mc *mediatorContext) anEmptyMediator() error {
	mc.registry = mediator.NewRegistry(mediator.WithScope(mc.scope))
	mc.mediator = mediator.New(mc.registry, mc.locator)
	return nil
}

func (mc *mediatorContext) aMediatorWithTheStandardHandlers() error {
	mc.registry = mediator.NewRegistry(mediator.WithScope(mc.scope))
	if err := ping.Register(mc.registry); err != nil {
		return err
	}
	if err := users.Register(mc.registry); err != nil {
		return err
	}
	mc.mediator = mediator.New(mc.registry, mc.locator)
	return nil
}

func (mc *mediatorContext) anAlternateGetUserHandlerIsRegistered() error {
	if mc.registry == nil {
		return fmt.Errorf("no mediator configured")
	}
	return mediator.RegisterQuery[users.GetUserQuery, *user.User, alternateGetUserHandler](mc.registry,
		func() alternateGetUserHandler {
			mc.altBuilds++
			return alternateGetUserHandler{}
		})
}

func (mc *mediatorContext) anInMemoryUserStore() error {
	mc.memStore = helpers.NewMockUserStore()
	mc.store = mc.memStore
	mc.locator.Set(helpers.TypeOf[user.Store](), mc.store)
	return nil
}

func (mc *mediatorContext) aDatabaseBackedUserStore() error {
	if helpers.SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	mc.store = persistence.NewGormUserRepository(helpers.SharedTestDB)
	mc.locator.Set(helpers.TypeOf[user.Store](), mc.store)
	return nil
}

func (mc *mediatorContext) theClockReads(value string) error {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	mc.locator.Set(helpers.TypeOf[user.Clock](), helpers.FixedClock{At: at})
	return nil
}

func (mc *mediatorContext) theUserStoreContainsUserNamed(id, name string) error {
	if mc.memStore == nil {
		return fmt.Errorf("no in-memory user store configured")
	}
	mc.memStore.AddUser(&user.User{
		ID:        id,
		Name:      name,
		Email:     id + "@example.com",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	return nil
}

// Action Steps

func (mc *mediatorContext) iAskAPingQuery() error {
	mc.queryResult, mc.err = mediator.Ask[string](context.Background(), mc.mediator, ping.PingQuery{})
	return nil
}

func (mc *mediatorContext) iSendACreateUserCommand(id, name, email string) error {
	mc.err = mc.mediator.Send(context.Background(), users.CreateUserCommand{
		ID:    id,
		Name:  name,
		Email: email,
	})
	return nil
}

func (mc *mediatorContext) iAskForUser(id string) error {
	mc.userResult, mc.err = mediator.Ask[*user.User](context.Background(), mc.mediator, users.GetUserQuery{ID: id})
	return nil
}

func (mc *mediatorContext) iAskForTheUserList() error {
	mc.listResult, mc.err = mediator.Ask[[]*user.User](context.Background(), mc.mediator, users.ListUsersQuery{})
	return nil
}

// Assertion Steps

func (mc *mediatorContext) theDispatchShouldSucceed() error {
	if mc.err != nil {
		return fmt.Errorf("expected success, got: %v", mc.err)
	}
	return nil
}

func (mc *mediatorContext) theDispatchShouldFailWith(kind string) error {
	if mc.err == nil {
		return fmt.Errorf("expected %s error, got success", kind)
	}
	if got := mediator.ErrorKind(mc.err); got != kind {
		return fmt.Errorf("expected %s error, got %s: %v", kind, got, mc.err)
	}
	return nil
}

func (mc *mediatorContext) theErrorShouldMention(text string) error {
	if mc.err == nil {
		return fmt.Errorf("expected an error mentioning %q, got success", text)
	}
	if !strings.Contains(mc.err.Error(), text) {
		return fmt.Errorf("expected error to mention %q, got: %v", text, mc.err)
	}
	return nil
}

func (mc *mediatorContext) theQueryResultShouldBe(expected string) error {
	if mc.queryResult != expected {
		return fmt.Errorf("expected result %q, got %q", expected, mc.queryResult)
	}
	return nil
}

func (mc *mediatorContext) theUserStoreShouldHaveReceivedSaves(count int) error {
	if mc.memStore == nil {
		return fmt.Errorf("no in-memory user store configured")
	}
	if got := len(mc.memStore.SaveCalls()); got != count {
		return fmt.Errorf("expected %d saves, got %d", count, got)
	}
	return nil
}

func (mc *mediatorContext) theSavedUserShouldBeNamed(id, name string) error {
	for _, u := range mc.memStore.SaveCalls() {
		if u.ID == id {
			if u.Name != name {
				return fmt.Errorf("expected user %s to be named %q, got %q", id, name, u.Name)
			}
			return nil
		}
	}
	return fmt.Errorf("user %s was never saved", id)
}

func (mc *mediatorContext) theReturnedUserShouldBeNamed(name string) error {
	if mc.userResult == nil {
		return fmt.Errorf("no user returned")
	}
	if mc.userResult.Name != name {
		return fmt.Errorf("expected user named %q, got %q", name, mc.userResult.Name)
	}
	return nil
}

func (mc *mediatorContext) theUserListShouldContainUsers(count int) error {
	if len(mc.listResult) != count {
		return fmt.Errorf("expected %d users, got %d", count, len(mc.listResult))
	}
	return nil
}

func (mc *mediatorContext) noHandlerShouldHaveBeenConstructed() error {
	if mc.altBuilds != 0 {
		return fmt.Errorf("alternate handler constructed %d times", mc.altBuilds)
	}
	if calls := mc.locator.Calls(); len(calls) != 0 {
		return fmt.Errorf("expected no dependency lookups, got %v", calls)
	}
	return nil
}

// InitializeMediatorScenario registers the mediator dispatch steps
func InitializeMediatorScenario(ctx *godog.ScenarioContext) {
	mc := &mediatorContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		mc.reset()
		return ctx, nil
	})

	// Setup
	ctx.Step(`^the handler scope is "([^"]*)"$`, mc.theHandlerScopeIs)
	ctx.Step(`^an empty mediator$`, mc.anEmptyMediator)
	ctx.Step(`^a mediator with the standard handlers$`, mc.aMediatorWithTheStandardHandlers)
	ctx.Step(`^an alternate get user handler is registered$`, mc.anAlternateGetUserHandlerIsRegistered)
	ctx.Step(`^an in-memory user store$`, mc.anInMemoryUserStore)
	ctx.Step(`^a database-backed user store$`, mc.aDatabaseBackedUserStore)
	ctx.Step(`^the clock reads "([^"]*)"$`, mc.theClockReads)
	ctx.Step(`^the user store contains user "([^"]*)" named "([^"]*)"$`, mc.theUserStoreContainsUserNamed)

	// Actions
	ctx.Step(`^I ask a ping query$`, mc.iAskAPingQuery)
	ctx.Step(`^I send a create user command with id "([^"]*)", name "([^"]*)" and email "([^"]*)"$`, mc.iSendACreateUserCommand)
	ctx.Step(`^I ask for user "([^"]*)"$`, mc.iAskForUser)
	ctx.Step(`^I ask for the user list$`, mc.iAskForTheUserList)

	// Assertions
	ctx.Step(`^the dispatch should succeed$`, mc.theDispatchShouldSucceed)
	ctx.Step(`^the dispatch should fail with "([^"]*)"$`, mc.theDispatchShouldFailWith)
	ctx.Step(`^the error should mention "([^"]*)"$`, mc.theErrorShouldMention)
	ctx.Step(`^the query result should be "([^"]*)"$`, mc.theQueryResultShouldBe)
	ctx.Step(`^the user store should have received (\d+) saves?$`, mc.theUserStoreShouldHaveReceivedSaves)
	ctx.Step(`^the saved user "([^"]*)" should be named "([^"]*)"$`, mc.theSavedUserShouldBeNamed)
	ctx.Step(`^the returned user should be named "([^"]*)"$`, mc.theReturnedUserShouldBeNamed)
	ctx.Step(`^the user list should contain (\d+) users$`, mc.theUserListShouldContainUsers)
	ctx.Step(`^no handler should have been constructed$`, mc.noHandlerShouldHaveBeenConstructed)
}

// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./profile.go -destination=../mocks/mock_profile_repository.go -package=mocks ProfileRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./business_unit.go -destination=../mocks/mock_business_unit_repository.go -package=mocks BusinessUnitRepositoryIface
//go:generate mockgen -source=./channel_setting.go -destination=../mocks/mock_channel_setting_repository.go -package=mocks ChannelSettingRepositoryIface
//go:generate mockgen -source=./contact.go -destination=../mocks/mock_contact_repository.go -package=mocks ContactRepositoryIface
//go:generate mockgen -source=./contact_link.go -destination=../mocks/mock_contact_link_repository.go -package=mocks ContactLinkRepositoryIface
//go:generate mockgen -source=./channel_preference.go -destination=../mocks/mock_channel_preference_repository.go -package=mocks ChannelPreferenceRepositoryIface

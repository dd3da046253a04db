// Package marketplace selects the marketplace client used by a sync run.
//
// Implementations live in sub-packages:
//   - ozon: the Ozon Seller API over HTTP.
//   - yandex: the Yandex Market Partner API, one client per FBS or DBS campaign.
//   - memory: an in-process marketplace for dry runs and tests.
package marketplace
